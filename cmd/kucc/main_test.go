package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/you-not-fish/kucode/internal/config"
)

const goodProgram = `worldwide fixed num LIMIT = 3;

define num twice(num n) {
	give n * 2;
}

start {
	num i;
	num total = 0;
	each i from 0 to LIMIT {
		total += twice(i);
	}
	check (total > 5) {
		show("big", total);
	}
}
finish
`

func writeTempKuFile(t *testing.T, src string) string {
	t.Helper()
	return writeTempFile(t, "input.ku", src)
}

func writeTempFile(t *testing.T, name, src string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(filename, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

// run executes kucc with args and returns its error and output streams.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv(config.EnvConfig, "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "kucc version "+Version+"\n") {
		t.Errorf("version output:\n%s", out)
	}
}

func TestTokens(t *testing.T) {
	out, errOut, err := run(t, "tokens", writeTempKuFile(t, `text s = "a\tb";`))
	if err != nil {
		t.Fatalf("tokens: %v\n%s", err, errOut)
	}
	for _, want := range []string{"POSITION", "identifier", `"a\tb"`, "EOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("token output missing %q:\n%s", want, out)
		}
	}
}

func TestTokensLexicalError(t *testing.T) {
	_, errOut, err := run(t, "tokens", writeTempKuFile(t, "num _x;"))
	if !errors.Is(err, errFailed) {
		t.Fatalf("err = %v, want errFailed", err)
	}
	if !strings.Contains(errOut, "[LexicalError]") || !strings.Contains(errOut, "underscore") {
		t.Errorf("stderr:\n%s", errOut)
	}
}

func TestAST(t *testing.T) {
	out, errOut, err := run(t, "ast", writeTempKuFile(t, goodProgram))
	if err != nil {
		t.Fatalf("ast: %v\n%s", err, errOut)
	}
	for _, want := range []string{"Program ", "input.ku:1:1", "ForStmt", "Name", "[bound] LIMIT", "BinaryExpr", "[cond] >"} {
		if !strings.Contains(out, want) {
			t.Errorf("AST missing %q:\n%s", want, out)
		}
	}
}

func TestASTJSON(t *testing.T) {
	out, errOut, err := run(t, "ast", "--json", writeTempKuFile(t, goodProgram))
	if err != nil {
		t.Fatalf("ast --json: %v\n%s", err, errOut)
	}
	var tree map[string]any
	if err := json.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if tree["type"] != "Program" {
		t.Errorf("root type = %v", tree["type"])
	}
}

func TestASTSyntaxError(t *testing.T) {
	out, errOut, err := run(t, "ast", writeTempKuFile(t, "start { num x = ; }\nfinish\n"))
	if !errors.Is(err, errFailed) {
		t.Fatalf("err = %v", err)
	}
	if out != "" {
		t.Errorf("printed a tree for a broken program:\n%s", out)
	}
	if !strings.Contains(errOut, "syntax error [SyntaxError]: unexpected ;") {
		t.Errorf("stderr:\n%s", errOut)
	}
}

func TestCheckClean(t *testing.T) {
	_, errOut, err := run(t, "check", writeTempKuFile(t, goodProgram))
	if err != nil || errOut != "" {
		t.Fatalf("check: %v\n%s", err, errOut)
	}
}

func TestCheckSemanticErrors(t *testing.T) {
	src := "start {\n\tnum x = \"a\";\n\ty = 1;\n}\nfinish\n"
	_, errOut, err := run(t, "check", writeTempKuFile(t, src))
	if !errors.Is(err, errFailed) {
		t.Fatalf("err = %v", err)
	}
	for _, want := range []string{"[TypeMismatch]", "[UndeclaredIdentifier]", "2 errors"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("stderr missing %q:\n%s", want, errOut)
		}
	}
}

func TestCheckPolicy(t *testing.T) {
	file := writeTempKuFile(t, "start {\n\tbool ok = Yes;\n\tcheck (ok) { }\n}\nfinish\n")

	_, errOut, _ := run(t, "check", file)
	if !strings.Contains(errOut, "[SyntaxError]") {
		t.Errorf("default policy:\n%s", errOut)
	}

	_, errOut, _ = run(t, "check", "--policy", "semantic", file)
	if !strings.Contains(errOut, "[NonBooleanCondition]") {
		t.Errorf("semantic policy:\n%s", errOut)
	}

	_, _, err := run(t, "check", "--policy", "lazy", file)
	if err == nil || !strings.Contains(err.Error(), "unknown bool policy") {
		t.Errorf("bad policy error = %v", err)
	}
}

func TestCheckConfigFile(t *testing.T) {
	file := writeTempKuFile(t, "start {\n\tbool ok = Yes;\n\tcheck (ok) { }\n}\nfinish\n")
	cfg := writeTempFile(t, "kucc.toml", "bool_policy = \"semantic\"\n")

	_, errOut, _ := run(t, "--config", cfg, "check", file)
	if !strings.Contains(errOut, "[NonBooleanCondition]") {
		t.Errorf("config policy not applied:\n%s", errOut)
	}

	// Flags override the file.
	_, errOut, _ = run(t, "--config", cfg, "--policy", "syntactic", "check", file)
	if !strings.Contains(errOut, "[SyntaxError]") {
		t.Errorf("flag did not override config:\n%s", errOut)
	}

	bad := writeTempFile(t, "bad.yaml", "colour: true\n")
	if _, _, err := run(t, "--config", bad, "check", file); err == nil {
		t.Error("expected error for unknown config key")
	}
}

func TestCheckRecover(t *testing.T) {
	file := writeTempKuFile(t, "start {\n\tnum x = ;\n\tx = 1 +;\n}\nfinish\n")

	_, errOut, _ := run(t, "check", file)
	if !strings.Contains(errOut, "2 errors") {
		t.Errorf("with recovery:\n%s", errOut)
	}

	_, errOut, _ = run(t, "check", "--recover=false", file)
	if !strings.Contains(errOut, "1 error\n") {
		t.Errorf("without recovery:\n%s", errOut)
	}
}

func TestCheckTypesAndSymbols(t *testing.T) {
	out, errOut, err := run(t, "check", "--types", "--symbols", writeTempKuFile(t, goodProgram))
	if err != nil {
		t.Fatalf("check: %v\n%s", err, errOut)
	}
	for _, want := range []string{
		`BinaryExpr * (num) [X=Name "n" (num), Y=BasicLit "2" (num)]`,
		`CallExpr twice (num) [Args=[Name "i" (num)]]`,
		"scope 0 global",
		"LIMIT: constant num",
		"twice: function define num(num)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckDumpAndTrace(t *testing.T) {
	out, errOut, err := run(t, "--trace", "check", "--dump-after", "check", writeTempKuFile(t, goodProgram))
	if err != nil {
		t.Fatalf("check: %v\n%s", err, errOut)
	}
	if !strings.HasPrefix(out, "--- after check (") {
		t.Errorf("dump output:\n%s", out)
	}
	if !strings.Contains(errOut, "msg=pass") || !strings.Contains(errOut, "name=parse") || !strings.Contains(errOut, "unit=") {
		t.Errorf("trace output:\n%s", errOut)
	}
}

func TestCheckMissingFile(t *testing.T) {
	_, _, err := run(t, "check", filepath.Join(t.TempDir(), "nope.ku"))
	if err == nil || errors.Is(err, errFailed) {
		t.Errorf("err = %v, want a file error", err)
	}
}

func TestGrammar(t *testing.T) {
	for _, policy := range []string{"syntactic", "semantic"} {
		out, _, err := run(t, "grammar", "--policy", policy)
		if err != nil {
			t.Fatalf("%s: %v", policy, err)
		}
		if !strings.HasPrefix(out, "policy "+policy+": ") || !strings.Contains(out, "productions") {
			t.Errorf("%s: %s", policy, out)
		}
	}

	short, _, _ := run(t, "grammar")
	long, _, _ := run(t, "grammar", "--dump")
	if len(long) <= len(short) {
		t.Error("--dump printed nothing extra")
	}
}

func TestFormatLiteral(t *testing.T) {
	tests := map[string]string{
		"":        "",
		"abc":     `"abc"`,
		"a\nb":    `"a\nb"`,
		`say "x"`: `"say \"x\""`,
		`c:\`:     `"c:\\"`,
	}
	for in, want := range tests {
		if got := formatLiteral(in); got != want {
			t.Errorf("formatLiteral(%q) = %s, want %s", in, got, want)
		}
	}
}

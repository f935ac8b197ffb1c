package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

type object = map[string]interface{}

func toJSON(node Node) interface{} {
	if isNil(node) {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		m := object{
			"type":    "Program",
			"pos":     n.pos.String(),
			"groups":  mapSlice(n.Groups, func(g *GroupDecl) interface{} { return toJSON(g) }),
			"globals": mapSlice(n.Globals, func(g *GlobalDecl) interface{} { return toJSON(g) }),
			"funcs":   mapSlice(n.Funcs, func(f *FuncDecl) interface{} { return toJSON(f) }),
		}
		if n.Body != nil {
			m["body"] = toJSON(n.Body)
		}
		return m

	case *GroupDecl:
		return object{
			"type":   "GroupDecl",
			"pos":    n.pos.String(),
			"name":   n.Name.Value,
			"fields": mapSlice(n.Fields, fieldJSON),
		}

	case *GlobalDecl:
		return declJSON("GlobalDecl", n.pos, n.Fixed, n.Type, n.Name, n.Value)

	case *FuncDecl:
		m := object{
			"type":   "FuncDecl",
			"pos":    n.pos.String(),
			"name":   n.Name.Value,
			"result": n.Result.String(),
			"params": mapSlice(n.Params, fieldJSON),
		}
		if n.Body != nil {
			m["body"] = toJSON(n.Body)
		}
		return m

	case *VarDecl:
		return declJSON("VarDecl", n.pos, n.Fixed, n.Type, n.Name, n.Value)

	case *AssignStmt:
		return object{
			"type": "AssignStmt",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"lhs":  toJSON(n.LHS),
			"rhs":  toJSON(n.RHS),
		}

	case *IncDecStmt:
		return object{"type": "IncDecStmt", "pos": n.pos.String(), "op": n.Op.String(), "x": toJSON(n.X)}

	case *CallStmt:
		return object{"type": "CallStmt", "pos": n.pos.String(), "call": toJSON(n.Call)}

	case *BlockStmt:
		return object{
			"type":  "BlockStmt",
			"pos":   n.pos.String(),
			"stmts": mapSlice(n.Stmts, stmtJSON),
		}

	case *IfStmt:
		m := object{
			"type": "IfStmt",
			"pos":  n.pos.String(),
			"cond": toJSON(n.Cond),
			"then": toJSON(n.Then),
		}
		if n.Else != nil {
			m["otherwise"] = toJSON(n.Else)
		}
		return m

	case *WhileStmt:
		return object{"type": "WhileStmt", "pos": n.pos.String(), "cond": toJSON(n.Cond), "body": toJSON(n.Body)}

	case *ForStmt:
		m := object{
			"type": "ForStmt",
			"pos":  n.pos.String(),
			"var":  n.Var.Value,
			"from": toJSON(n.From),
			"to":   toJSON(n.To),
			"body": toJSON(n.Body),
		}
		if n.Step != nil {
			m["step"] = toJSON(n.Step)
		}
		return m

	case *SelectStmt:
		m := object{
			"type":    "SelectStmt",
			"pos":     n.pos.String(),
			"subject": n.Subject.Value,
			"options": mapSlice(n.Options, func(o *OptionClause) interface{} { return toJSON(o) }),
		}
		if n.Fallback != nil {
			m["fallback"] = toJSON(n.Fallback)
		}
		return m

	case *OptionClause:
		m := object{"pos": n.pos.String(), "body": mapSlice(n.Body, stmtJSON)}
		if n.Value != nil {
			m["value"] = toJSON(n.Value)
			m["flow"] = n.Flow.String()
		}
		return m

	case *ReturnStmt:
		m := object{"type": "ReturnStmt", "pos": n.pos.String()}
		if n.Result != nil {
			m["result"] = toJSON(n.Result)
		}
		return m

	case *ShowStmt:
		return object{"type": "ShowStmt", "pos": n.pos.String(), "args": mapSlice(n.Args, exprJSON)}

	case *ReadStmt:
		return object{"type": "ReadStmt", "pos": n.pos.String(), "target": n.Target.Value}

	case *Name:
		return exprObject(n, "Name", object{"value": n.Value})

	case *BasicLit:
		return exprObject(n, "BasicLit", object{"kind": n.Kind.String(), "value": n.Value})

	case *BinaryExpr:
		return exprObject(n, "BinaryExpr", object{"op": n.Op.String(), "x": toJSON(n.X), "y": toJSON(n.Y)})

	case *UnaryExpr:
		return exprObject(n, "UnaryExpr", object{"op": n.Op.String(), "x": toJSON(n.X)})

	case *CallExpr:
		return exprObject(n, "CallExpr", object{"fun": n.Fun.Value, "args": mapSlice(n.Args, exprJSON)})

	case *IndexExpr:
		return exprObject(n, "IndexExpr", object{"x": toJSON(n.X), "index": toJSON(n.Index)})

	case *MemberExpr:
		return exprObject(n, "MemberExpr", object{"x": toJSON(n.X), "sel": n.Sel.Value})

	case *SizeExpr:
		m := object{"list": n.List.Value}
		if n.Dim != nil {
			m["dim"] = n.Dim.Value
		}
		return exprObject(n, "SizeExpr", m)

	case *ListLit:
		return exprObject(n, "ListLit", object{"elems": mapSlice(n.Elems, exprJSON)})
	}

	return object{"type": "unknown", "pos": node.Pos().String()}
}

func exprObject(x Expr, typ string, m object) object {
	m["type"] = typ
	m["pos"] = x.Pos().String()
	m["context"] = x.Context().String()
	return m
}

func declJSON(typ string, pos Pos, fixed bool, t *TypeRef, name *Name, value Expr) object {
	m := object{
		"type":    typ,
		"pos":     pos.String(),
		"name":    name.Value,
		"vartype": t.String(),
	}
	if fixed {
		m["fixed"] = true
	}
	if value != nil {
		m["value"] = toJSON(value)
	}
	return m
}

func fieldJSON(f *Field) interface{} {
	return object{"name": f.Name.Value, "type": f.Type.String()}
}

func stmtJSON(s Stmt) interface{} { return toJSON(s) }
func exprJSON(x Expr) interface{} { return toJSON(x) }

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}

package asm

type File struct {
	Shader string  `"shader" @String`
	Decls  []*Decl `@@*`
}

type Decl struct {
	Type *TypeDecl `  @@`
	Var  *VarDecl  `| @@`
	Func *FuncDecl `| @@`
}

type TypeDecl struct {
	Name   string       `"type" @Ident "="`
	Fields []*FieldDecl `"struct" "{" @@* "}"`
}

type FieldDecl struct {
	Name string    `@Ident ":"`
	Type *TypeExpr `@@ ","`
}

type TypeExpr struct {
	Array  *ArrayExpr  `  @@`
	Vector *VectorExpr `| @@`
	Scalar *string     `| @("f32" | "i32" | "u32" | "bool")`
	Named  *string     `| @Ident`
}

type ArrayExpr struct {
	Len  *string   `"[" @Integer? "]"`
	Elem *TypeExpr `@@`
}

type VectorExpr struct {
	Size   string `@("vec2" | "vec3" | "vec4")`
	Scalar string `"<" @("f32" | "i32" | "u32" | "bool") ">"`
}

type VarDecl struct {
	Name    string    `"var" @Ident ":"`
	Type    *TypeExpr `@@`
	Group   *string   `("@" "group" "(" @Integer ")")?`
	Binding *string   `("@" "binding" "(" @Integer ")")?`
	Space   string    `@("storage" | "uniform" | "workgroup" | "push_constant" | "handle" | "private")`
}

type FuncDecl struct {
	Name    string  `"fn" @Ident`
	Linkage string  `@("external" | "internal")`
	Stage   *string `("stage" "(" @Ident ")")?`
	Body    []*Inst `"{" @@* "}"`
}

type Inst struct {
	ArrayLen *ArrayLenInst `  @@`
	Load     *LoadInst     `| @@`
	Store    *StoreInst    `| @@`
	Builtin  *BuiltinInst  `| @@`
	Discard  bool          `| @"discard"`
	Ret      *RetInst      `| @@`
}

type ArrayLenInst struct {
	Result  string    `@Value "=" "arraylength"`
	Global  string    `@Ident`
	Indices *IndexSet `@@?`
	Type    *TypeExpr `":" @@`
}

type LoadInst struct {
	Result  string    `@Value "=" "load"`
	Global  string    `@Ident`
	Indices *IndexSet `@@?`
	Type    *TypeExpr `":" @@`
}

type StoreInst struct {
	Global  string    `"store" @Ident`
	Indices *IndexSet `@@?`
	Value   string    `"," @Value`
	Type    *TypeExpr `":" @@`
}

type BuiltinInst struct {
	Result string `@Value "=" "builtin"`
	Name   string `@Ident`
}

type RetInst struct {
	Kw    bool    `@"ret"`
	Value *string `@Value?`
}

type IndexSet struct {
	Indices []string `"[" (@Integer ("," @Integer)*)? "]"`
}

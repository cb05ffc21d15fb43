package api

// note that these are *not* the DAO models; those are distinct and closer to
// the DB format they are stored in. Rather these are the models that are
// received from and sent to the client.

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

type UserCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type UserModel struct {
	URI      string `json:"uri"`
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

type InfoModel struct {
	Version struct {
		Server string `json:"server"`
		Coins  string `json:"coins"`
	} `json:"version"`
}

// JobSubmitRequest is the body of a job submission request.
type JobSubmitRequest struct {
	Source string `json:"source"`
}

// DiagnosticModel is the client-facing rendering of a coinserr.Diagnostic.
type DiagnosticModel struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// SymbolModel is the client-facing rendering of a symtab.Symbol.
type SymbolModel struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Type         string `json:"type"`
	CurrentValue string `json:"current_value,omitempty"`
}

// JobModel is the client-facing rendering of a dao.Job.
type JobModel struct {
	URI       string `json:"uri"`
	ID        string `json:"id"`
	Submitted string `json:"submitted"`

	LexErrorCount      int `json:"lex_error_count"`
	SyntaxErrorCount   int `json:"syntax_error_count"`
	SemanticErrorCount int `json:"semantic_error_count"`
	WarningCount       int `json:"warning_count"`

	CodegenRan    bool   `json:"codegen_ran"`
	GeneratedCode string `json:"generated_code,omitempty"`

	Symbols []SymbolModel `json:"symbols,omitempty"`
}

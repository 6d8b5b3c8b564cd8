package model

// Tipo é o nível de acesso de um usuário
type Tipo string

const (
	TipoAdmin Tipo = "admin"
	TipoComum Tipo = "comum"
)

// IsAdmin informa se o tipo dá acesso administrativo
func (t Tipo) IsAdmin() bool {
	return t == TipoAdmin
}

// Usuario representa um usuário do sistema
type Usuario struct {
	Username string `json:"username"`
	Tipo     Tipo   `json:"tipo"`
}

// UsuarioEntity é a representação de banco de dados de um usuário.
// O esquema da tabela é herdado dos arquivos de banco legados: a chave
// primária é o próprio username e a senha é um digest SHA-256 em hex.
type UsuarioEntity struct {
	Username string `gorm:"column:username;primaryKey;size:50"`
	Password string `gorm:"column:password;not null"`
	Tipo     string `gorm:"column:tipo;size:20"`
}

// TableName define o nome da tabela
func (UsuarioEntity) TableName() string {
	return "usuarios"
}

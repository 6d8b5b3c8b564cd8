package model

// Funcao é uma categoria de cobrança com valor por hora
type Funcao struct {
	ID        int64   `json:"id"`
	Nome      string  `json:"nome"`
	ValorHora float64 `json:"valor_hora"`
}

// FuncaoEntity é a representação de banco de dados de uma função
type FuncaoEntity struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Nome      string  `gorm:"column:nome;size:100"`
	ValorHora float64 `gorm:"column:valor_hora"`
}

// TableName define o nome da tabela
func (FuncaoEntity) TableName() string {
	return "funcoes"
}

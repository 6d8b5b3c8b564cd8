package database

import (
	"context"
	"fmt"
	"time"

	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/atendsys/gestao-atendimentos/pkg/security"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migration registra uma etapa de esquema já aplicada
type Migration struct {
	ID        uint  `gorm:"primaryKey"`
	Version   int64 `gorm:"uniqueIndex"`
	Name      string
	AppliedAt time.Time
}

// TableName define o nome da tabela de controle de versões
func (Migration) TableName() string {
	return "schema_migrations"
}

// migrationStep é uma etapa de migração ordenada e idempotente.
// Etapas opcionais têm falhas engolidas: o upgrade é registrado em log e o
// processo segue em frente, privilegiando disponibilidade sobre rigidez.
type migrationStep struct {
	Version  int64
	Name     string
	Optional bool
	Apply    func(tx *gorm.DB) error
}

// Formas de primeira geração das tabelas, usadas apenas na etapa de
// criação. As colunas introduzidas depois entram pelas etapas seguintes,
// exatamente como um arquivo legado seria atualizado.
type usuarioBase struct {
	Username string `gorm:"column:username;primaryKey;size:50"`
	Password string `gorm:"column:password;not null"`
	Tipo     string `gorm:"column:tipo;size:20"`
}

func (usuarioBase) TableName() string { return "usuarios" }

type funcaoBase struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Nome      string  `gorm:"column:nome;size:100"`
	ValorHora float64 `gorm:"column:valor_hora"`
}

func (funcaoBase) TableName() string { return "funcoes" }

type atendimentoBase struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Inicio     time.Time `gorm:"column:inicio"`
	Termino    time.Time `gorm:"column:termino"`
	Funcao     string    `gorm:"column:funcao;size:100"`
	ValorTotal float64   `gorm:"column:valor_total"`
}

func (atendimentoBase) TableName() string { return "atendimentos" }

// SchemaManager garante que as três tabelas existem e atualiza aditivamente
// arquivos gravados por gerações anteriores do esquema. Nunca remove nem
// reescreve linhas existentes.
type SchemaManager struct {
	db            *gorm.DB
	logger        *zap.Logger
	adminUsername string
	adminPassword string
}

// NewSchemaManager cria um novo gerenciador de esquema
func NewSchemaManager(db *gorm.DB, logger *zap.Logger, adminUsername, adminPassword string) *SchemaManager {
	return &SchemaManager{
		db:            db,
		logger:        logger,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

// steps devolve a lista ordenada de etapas de migração. Cada etapa é
// idempotente por conta própria, então rodar tudo de novo é sempre seguro.
func (m *SchemaManager) steps() []migrationStep {
	addColumn := func(field string) func(tx *gorm.DB) error {
		return func(tx *gorm.DB) error {
			if tx.Migrator().HasColumn(&model.AtendimentoEntity{}, field) {
				return nil
			}
			return tx.Migrator().AddColumn(&model.AtendimentoEntity{}, field)
		}
	}

	return []migrationStep{
		{
			Version: 1,
			Name:    "criar_tabelas_base",
			Apply: func(tx *gorm.DB) error {
				for _, table := range []interface{}{&usuarioBase{}, &funcaoBase{}, &atendimentoBase{}} {
					if tx.Migrator().HasTable(table) {
						continue
					}
					if err := tx.Migrator().CreateTable(table); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{Version: 2, Name: "adicionar_usuario_responsavel", Optional: true, Apply: addColumn("Responsavel")},
		{Version: 3, Name: "adicionar_detalhes", Optional: true, Apply: addColumn("Detalhes")},
		{Version: 4, Name: "adicionar_paciente", Optional: true, Apply: addColumn("Paciente")},
		{Version: 5, Name: "adicionar_periodo", Optional: true, Apply: addColumn("Periodo")},
	}
}

// EnsureSchema aplica as etapas pendentes e semeia o administrador inicial.
// Deve rodar uma única vez na inicialização, antes de qualquer outro
// componente tocar o armazenamento.
func (m *SchemaManager) EnsureSchema(ctx context.Context) error {
	db := m.db.WithContext(ctx)

	// Tabela de controle de versões
	if err := db.AutoMigrate(&Migration{}); err != nil {
		return fmt.Errorf("falha ao criar tabela de migrações: %w", err)
	}

	// Buscar versões já aplicadas
	var applied []Migration
	if err := db.Order("version").Find(&applied).Error; err != nil {
		return fmt.Errorf("falha ao buscar migrações aplicadas: %w", err)
	}
	appliedVersions := make(map[int64]bool, len(applied))
	for _, migration := range applied {
		appliedVersions[migration.Version] = true
	}

	for _, step := range m.steps() {
		if appliedVersions[step.Version] {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := step.Apply(tx); err != nil {
				return err
			}
			return tx.Create(&Migration{
				Version:   step.Version,
				Name:      step.Name,
				AppliedAt: time.Now(),
			}).Error
		})
		if err != nil {
			if step.Optional {
				// Upgrade de melhor esforço: a etapa não é registrada e
				// será tentada de novo na próxima inicialização.
				m.logger.Warn("atualização de esquema ignorada",
					zap.Int64("version", step.Version),
					zap.String("name", step.Name),
					zap.Error(err))
				continue
			}
			return fmt.Errorf("falha ao aplicar migração %d (%s): %w", step.Version, step.Name, err)
		}

		m.logger.Info("migração aplicada",
			zap.Int64("version", step.Version),
			zap.String("name", step.Name))
	}

	return m.seedAdmin(ctx)
}

// seedAdmin insere o administrador inicial quando a tabela de usuários está
// vazia. O usuário semeado não pode ser excluído pela interface exposta.
func (m *SchemaManager) seedAdmin(ctx context.Context) error {
	var count int64
	if err := m.db.WithContext(ctx).Model(&model.UsuarioEntity{}).Count(&count).Error; err != nil {
		return fmt.Errorf("falha ao contar usuários: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin := &model.UsuarioEntity{
		Username: m.adminUsername,
		Password: security.HashPassword(m.adminPassword),
		Tipo:     string(model.TipoAdmin),
	}
	if err := m.db.WithContext(ctx).Create(admin).Error; err != nil {
		return fmt.Errorf("falha ao semear administrador inicial: %w", err)
	}

	m.logger.Info("administrador inicial criado", zap.String("username", m.adminUsername))
	return nil
}

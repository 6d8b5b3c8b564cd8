// Package export gera os anexos de relatório em XLSX e PDF.
package export

import (
	"fmt"

	"github.com/atendsys/gestao-atendimentos/internal/domain/model"
	"github.com/xuri/excelize/v2"
)

// xlsxHeader espelha os nomes das colunas da tabela de atendimentos
var xlsxHeader = []string{
	"id", "inicio", "termino", "funcao", "paciente",
	"detalhes", "valor_total", "usuario_responsavel", "periodo",
}

const xlsxSheet = "Atendimentos"

// XLSX serializa os atendimentos filtrados em uma planilha de aba única
// com valores crus, sem formatação de moeda ou data
func XLSX(atendimentos []*model.Atendimento) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar aba da planilha: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("erro ao remover aba padrão: %w", err)
	}

	for col, nome := range xlsxHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheet, cell, nome); err != nil {
			return nil, fmt.Errorf("erro ao escrever cabeçalho: %w", err)
		}
	}

	for i, a := range atendimentos {
		valores := []interface{}{
			a.ID,
			a.Inicio,
			a.Termino,
			a.Funcao,
			a.Paciente,
			a.Detalhes,
			a.ValorTotal,
			a.Responsavel,
			string(a.Periodo),
		}
		for col, v := range valores {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return nil, fmt.Errorf("erro ao escrever linha %d: %w", i+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar planilha: %w", err)
	}
	return buf.Bytes(), nil
}

// XLSXFilename monta o nome do anexo, por exemplo Relatorio_Marco.xlsx
func XLSXFilename(monthName string) string {
	return fmt.Sprintf("Relatorio_%s.xlsx", monthName)
}

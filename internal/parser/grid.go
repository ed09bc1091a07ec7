package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Grid 单个 Sheet 的只读网格视图
// 行列均为 1 基，越界返回空字符串
type Grid struct {
	sheet  string
	rows   [][]string
	maxCol int
}

// NewGrid 读取指定 Sheet 的全部单元格并缓存
func NewGrid(f *excelize.File, sheet string) (*Grid, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	return &Grid{sheet: sheet, rows: rows, maxCol: maxCol}, nil
}

// Sheet 所属 Sheet 名
func (g *Grid) Sheet() string {
	return g.sheet
}

// Cell 读取 (row, col) 单元格文本
func (g *Grid) Cell(row, col int) string {
	if row < 1 || col < 1 || row > len(g.rows) {
		return ""
	}
	r := g.rows[row-1]
	if col > len(r) {
		return ""
	}
	return r[col-1]
}

// MaxRow 最后一个非空行的行号
func (g *Grid) MaxRow() int {
	return len(g.rows)
}

// MaxCol 最宽一行的列数
func (g *Grid) MaxCol() int {
	return g.maxCol
}

package parser

import (
	"github.com/BecaLiang/stg-final/internal/model"
)

// CellRef 单元格坐标（1 基行列），图片绑定与取值共用的连接键
// 保持结构化形式，避免超过 Z 列时字母坐标拼写出错
type CellRef struct {
	Col int
	Row int
}

// ImageMap 单元格坐标 → 锚定在该格的图片文件名（按发现顺序）
type ImageMap map[CellRef][]string

// Classification 模板识别结果
type Classification struct {
	Kind model.TemplateKind
	// Fallback 仅命中结构兜底规则时为 true，需人工复核
	Fallback bool
}

// signatureScan 签名区扫描策略
type signatureScan int

const (
	// scanFixedWindow CEA：在固定行窗口内找 Date/Signature 标签
	scanFixedWindow signatureScan = iota
	// scanTail EQ：在末尾若干行内找标签，日期在 1 列、签名在 4 列
	scanTail
	// scanTailDual starteam：末尾扫描 4 列 Signature 标签，4/5 列各有
	// "日期\n签名" 双段载荷
	scanTailDual
)

// TemplateLayout 每种模板的坐标配置（问题表起始行、列角色、签名区策略）
type TemplateLayout struct {
	QuestionStartRow int // 该行之后一行为表头，数据再下一行开始
	NoCol            int
	DescCol          int
	SuggCol          int
	RespCol          int
	signature        signatureScan
}

// LayoutFor 返回模板对应的坐标配置
func LayoutFor(kind model.TemplateKind) TemplateLayout {
	switch kind {
	case model.TemplateStarteam:
		// starteam 在建议列后多插一列，客户决策在第 5 列
		return TemplateLayout{
			QuestionStartRow: 10,
			NoCol:            1,
			DescCol:          2,
			SuggCol:          3,
			RespCol:          5,
			signature:        scanTailDual,
		}
	case model.TemplateEQ:
		return TemplateLayout{
			QuestionStartRow: 9,
			NoCol:            1,
			DescCol:          2,
			SuggCol:          3,
			RespCol:          4,
			signature:        scanTail,
		}
	default: // CEA
		return TemplateLayout{
			QuestionStartRow: 9,
			NoCol:            1,
			DescCol:          2,
			SuggCol:          3,
			RespCol:          4,
			signature:        scanFixedWindow,
		}
	}
}

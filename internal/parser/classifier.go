package parser

import (
	"strings"

	"github.com/BecaLiang/stg-final/internal/model"
)

// 模板识别常量
// 阈值为对实际文件调参得到的经验值，保持原值不做推断
const (
	sampleRowWindow = 20 // 采样窗口：前 20 行
	sampleColWindow = 15 // 采样窗口：前 15 列

	markerCEA         = "CEA"
	markerCEAApproval = "Customer Engineering Approval"
	markerEQPhrase    = "Engineering Questionnaire"
	markerEQShort     = "EQ"
	markerProposal    = "STG Proposal"
	markerDecision    = "Customer Decision"

	ceaSheetName = "CEA"
	eqSheetName  = "EQ Template"

	ceaMaxColLimit  = 6  // CEA 结构兜底：列数不超过 6
	starteamMinCols = 10 // starteam 结构兜底：列数不少于 10
)

// Classify 将表格归类为三种已知模板之一，否则返回 TemplateNone
// 先按内容关键字判断，再按 Sheet 名 + 列数做结构兜底，
// 以容忍被重命名的 Sheet，同时避免相似文件误判
func Classify(sheetName string, grid *Grid) Classification {
	sample := sampleText(grid)

	// 内容优先
	if strings.Contains(sample, markerCEA) && strings.Contains(sample, markerCEAApproval) {
		if sheetName == ceaSheetName {
			return Classification{Kind: model.TemplateCEA}
		}
	}

	if strings.Contains(sample, markerEQPhrase) || strings.Contains(sample, markerEQShort) {
		if strings.Contains(sample, markerProposal) && strings.Contains(sample, markerDecision) {
			return Classification{Kind: model.TemplateStarteam}
		}
		return Classification{Kind: model.TemplateEQ}
	}

	// 结构兜底
	if sheetName == ceaSheetName && grid.MaxCol() <= ceaMaxColLimit {
		return Classification{Kind: model.TemplateCEA, Fallback: true}
	}

	if sheetName == eqSheetName {
		if grid.MaxCol() >= starteamMinCols {
			return Classification{Kind: model.TemplateStarteam, Fallback: true}
		}
		return Classification{Kind: model.TemplateEQ, Fallback: true}
	}

	return Classification{Kind: model.TemplateNone}
}

// sampleText 拼接采样窗口内的非空单元格文本
func sampleText(grid *Grid) string {
	var b strings.Builder
	maxRow := min(sampleRowWindow, grid.MaxRow())
	maxCol := min(sampleColWindow, grid.MaxCol())

	for r := 1; r <= maxRow; r++ {
		for c := 1; c <= maxCol; c++ {
			v := grid.Cell(r, c)
			if v == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(v)
		}
	}
	return b.String()
}

package parser

import (
	"strings"
	"time"

	"github.com/BecaLiang/stg-final/internal/model"
)

// 签名区扫描窗口
// 各模板上方表格长度不同，签名区位置随之浮动
const (
	ceaSignatureScanFrom = 15 // CEA 固定窗口起始行
	ceaSignatureScanTo   = 24 // CEA 固定窗口结束行（含）
	tailScanRows         = 10 // EQ/starteam 从末尾回看的行数
)

// ExtractMetadata 按模板坐标表读取表头/表尾元数据，纯读取无副作用
func ExtractMetadata(grid *Grid, kind model.TemplateKind) model.Metadata {
	meta := model.Metadata{
		CustomerPN:         []string{},
		FactoryPN:          []string{},
		StgPN:              []string{},
		StgSignatures:      []string{},
		CustomerSignatures: []string{},
	}

	// 模板无关的固定坐标区
	meta.CustomerName = strings.TrimSpace(grid.Cell(1, 3))
	meta.EngineerName = optional(grid.Cell(1, 5))

	if v := grid.Cell(2, 3); v != "" {
		meta.CustomerPN = SplitLines(v)
	}
	if v := grid.Cell(2, 5); v != "" {
		meta.FactoryPN = SplitLines(v)
	}
	if v := grid.Cell(3, 3); v != "" {
		meta.StgPN = SplitLines(v)
	}

	// 表头日期，可解析时作为整单的 createdAt
	meta.CreatedAt = ParseCellDate(grid.Cell(3, 5))

	meta.BaseMaterial = optional(grid.Cell(7, 3))
	meta.SolderMask = optional(grid.Cell(7, 5))

	layout := LayoutFor(kind)
	switch layout.signature {
	case scanFixedWindow:
		extractCEASignature(grid, &meta)
	case scanTail:
		extractTailSignature(grid, &meta)
	case scanTailDual:
		// starteam 额外字段：塞孔类型与拼板尺寸
		meta.ViaPluggingType = optional(grid.Cell(8, 3))
		meta.PanelSize = optional(grid.Cell(8, 5))
		extractDualSignature(grid, &meta)
	}

	return meta
}

// extractCEASignature CEA：固定窗口内找 Date/Signature 标签，值在标签下一行
func extractCEASignature(grid *Grid, meta *model.Metadata) {
	to := min(ceaSignatureScanTo, grid.MaxRow())
	for row := ceaSignatureScanFrom; row <= to; row++ {
		if strings.Contains(grid.Cell(row, 1), "Date") {
			if t := ParseCellDate(grid.Cell(row+1, 1)); t != nil {
				meta.CustomerSignatureDate = t
			}
		}
		if strings.Contains(grid.Cell(row, 4), "Signature") {
			if v := grid.Cell(row+1, 4); v != "" {
				meta.CustomerSignatures = []string{v}
			}
		}
	}
}

// extractTailSignature EQ：末尾若干行内找标签，日期在 1 列、签名在 4 列
func extractTailSignature(grid *Grid, meta *model.Metadata) {
	from := max(1, grid.MaxRow()-tailScanRows)
	for row := from; row < grid.MaxRow(); row++ {
		label := grid.Cell(row, 1)
		if !strings.Contains(label, "Date") && !strings.Contains(label, "Signature") {
			continue
		}
		if t := ParseCellDate(grid.Cell(row+1, 1)); t != nil {
			meta.CustomerSignatureDate = t
		}
		if v := grid.Cell(row+1, 4); v != "" {
			meta.CustomerSignatures = []string{v}
		}
	}
}

// extractDualSignature starteam：4 列 Signature 标签下一行，
// 4 列为 STG 方、5 列为客户方的 "日期\n签名" 双段载荷
func extractDualSignature(grid *Grid, meta *model.Metadata) {
	from := max(1, grid.MaxRow()-tailScanRows)
	for row := from; row < grid.MaxRow(); row++ {
		if !strings.Contains(grid.Cell(row, 4), "Signature") {
			continue
		}
		if v := grid.Cell(row+1, 4); v != "" {
			meta.StgSignatureDate, meta.StgSignatures = splitSignaturePayload(v)
		}
		if v := grid.Cell(row+1, 5); v != "" {
			meta.CustomerSignatureDate, meta.CustomerSignatures = splitSignaturePayload(v)
		}
	}
}

// splitSignaturePayload 拆分 "DD.MM.YYYY\n签名" 载荷
// 首行日期解析失败时整段文本按签名保留、日期置空，这是刻意的回退
// 行为而非错误（其他日期格式不做猜测）
func splitSignaturePayload(payload string) (*time.Time, []string) {
	lines := strings.Split(payload, "\n")
	if len(lines) < 2 {
		return nil, []string{payload}
	}

	t, ok := ParseSignatureDate(lines[0])
	if !ok {
		return nil, []string{payload}
	}

	signature := strings.TrimSpace(strings.Join(lines[1:], "\n"))
	return &t, []string{signature}
}

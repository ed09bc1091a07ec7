package parser

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/BecaLiang/stg-final/internal/model"
)

// newTestGrid 构造单 Sheet 测试网格，cells 为 "A1" 形式坐标 → 值
func newTestGrid(t *testing.T, sheetName string, cells map[string]interface{}) *Grid {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for cell, value := range cells {
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			t.Fatalf("set cell %s: %v", cell, err)
		}
	}

	grid, err := NewGrid(f, sheetName)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	return grid
}

func TestClassify_CEAByContent(t *testing.T) {
	t.Parallel()

	grid := newTestGrid(t, "CEA", map[string]interface{}{
		"A1": "CEA",
		"B2": "Customer Engineering Approval",
	})

	cls := Classify("CEA", grid)
	if cls.Kind != model.TemplateCEA {
		t.Fatalf("want CEA, got %q", cls.Kind)
	}
	if cls.Fallback {
		t.Fatalf("content match must not be flagged as fallback")
	}
}

func TestClassify_CEAContentButRenamedSheet(t *testing.T) {
	t.Parallel()

	// 内容匹配但 Sheet 名不是 CEA，内容规则不命中；
	// 结构兜底也不命中（Sheet 名不符），应判为无法识别
	grid := newTestGrid(t, "Approval", map[string]interface{}{
		"A1": "CEA",
		"B2": "Customer Engineering Approval",
	})

	// 注意 "Customer Engineering Approval" 不包含子串 "EQ"
	cls := Classify("Approval", grid)
	if cls.Kind != model.TemplateNone {
		t.Fatalf("want none, got %q", cls.Kind)
	}
}

func TestClassify_EQByPhrase(t *testing.T) {
	t.Parallel()

	grid := newTestGrid(t, "Sheet A", map[string]interface{}{
		"A1": "Engineering Questionnaire",
	})

	cls := Classify("Sheet A", grid)
	if cls.Kind != model.TemplateEQ || cls.Fallback {
		t.Fatalf("want EQ (content), got %q fallback=%v", cls.Kind, cls.Fallback)
	}
}

func TestClassify_StarteamByMarkers(t *testing.T) {
	t.Parallel()

	grid := newTestGrid(t, "Sheet A", map[string]interface{}{
		"A1": "Engineering Questionnaire",
		"C3": "STG Proposal",
		"E3": "Customer Decision",
	})

	cls := Classify("Sheet A", grid)
	if cls.Kind != model.TemplateStarteam || cls.Fallback {
		t.Fatalf("want starteam (content), got %q fallback=%v", cls.Kind, cls.Fallback)
	}
}

func TestClassify_CEAStructuralFallback(t *testing.T) {
	t.Parallel()

	// Sheet 名为 CEA 且列数不超过 6，没有任何关键字文本，
	// 仍应由结构兜底判为 CEA 并标记人工复核
	grid := newTestGrid(t, "CEA", map[string]interface{}{
		"A1": "customer",
		"F2": "material",
	})

	cls := Classify("CEA", grid)
	if cls.Kind != model.TemplateCEA {
		t.Fatalf("want CEA via fallback, got %q", cls.Kind)
	}
	if !cls.Fallback {
		t.Fatalf("structural match must be flagged as fallback")
	}
}

func TestClassify_EQTemplateStructuralFallback(t *testing.T) {
	t.Parallel()

	narrow := newTestGrid(t, "EQ Template", map[string]interface{}{
		"A1": "customer",
		"D2": "material",
	})
	cls := Classify("EQ Template", narrow)
	if cls.Kind != model.TemplateEQ || !cls.Fallback {
		t.Fatalf("narrow sheet: want EQ fallback, got %q fallback=%v", cls.Kind, cls.Fallback)
	}

	// starteam 列更多，列数达到阈值时判为扩展变体
	wide := newTestGrid(t, "EQ Template", map[string]interface{}{
		"A1": "customer",
		"L1": "decision",
	})
	cls = Classify("EQ Template", wide)
	if cls.Kind != model.TemplateStarteam || !cls.Fallback {
		t.Fatalf("wide sheet: want starteam fallback, got %q fallback=%v", cls.Kind, cls.Fallback)
	}
}

func TestClassify_Unrecognized(t *testing.T) {
	t.Parallel()

	grid := newTestGrid(t, "数据表", map[string]interface{}{
		"A1": "销售额",
		"B1": "单位名称",
	})

	cls := Classify("数据表", grid)
	if cls.Kind != model.TemplateNone {
		t.Fatalf("want none, got %q", cls.Kind)
	}
}

package parser

import (
	"testing"
	"time"

	"github.com/BecaLiang/stg-final/internal/model"
)

func TestParseQuestions_EQTable(t *testing.T) {
	t.Parallel()

	grid := newTestGrid(t, "EQ Template", map[string]interface{}{
		"A9":  "No.",
		"B9":  "Description",
		"A10": 1, // 整数类型的序号单元格
		"B10": "Impedance out of tolerance",
		"C10": "Adjust trace width",
		"D10": "Approved",
		"A11": "remark",   // 非问题行，跳过但不终止
		"A12": "",         // 空白分隔行
		"A13": "2",
		"B13": "Missing solder mask opening",
	})

	questions := ParseQuestions(grid, model.TemplateEQ, ImageMap{}, time.Now())
	if len(questions) != 2 {
		t.Fatalf("want 2 questions, got %d", len(questions))
	}

	q := questions[0]
	if q.No != "1" {
		t.Fatalf("no = %q, want digit string even for integer cell", q.No)
	}
	if q.Description == nil || *q.Description != "Impedance out of tolerance" {
		t.Fatalf("description = %v", q.Description)
	}
	if q.Suggestion == nil || *q.Suggestion != "Adjust trace width" {
		t.Fatalf("suggestion = %v", q.Suggestion)
	}
	if q.CustomerResponse == nil || *q.CustomerResponse != "Approved" {
		t.Fatalf("customerResponse = %v", q.CustomerResponse)
	}

	if questions[1].No != "2" || questions[1].Suggestion != nil {
		t.Fatalf("second question mismatch: %+v", questions[1])
	}
}

func TestParseQuestions_StarteamResponseColumn(t *testing.T) {
	t.Parallel()

	// starteam 多插一列，客户决策在第 5 列
	grid := newTestGrid(t, "EQ Template", map[string]interface{}{
		"A11": "1",
		"B11": "desc",
		"C11": "sugg",
		"D11": "proposal detail",
		"E11": "customer decision",
	})

	questions := ParseQuestions(grid, model.TemplateStarteam, ImageMap{}, time.Now())
	if len(questions) != 1 {
		t.Fatalf("want 1 question, got %d", len(questions))
	}
	if q := questions[0]; q.CustomerResponse == nil || *q.CustomerResponse != "customer decision" {
		t.Fatalf("customerResponse = %v", q.CustomerResponse)
	}
}

func TestParseQuestions_ImageBindingIsExact(t *testing.T) {
	t.Parallel()

	grid := newTestGrid(t, "EQ Template", map[string]interface{}{
		"A10": "1",
		"B10": "desc",
		"A12": "2",
	})

	now := time.Now()
	images := ImageMap{
		{Col: 2, Row: 10}: {"image_1.png"}, // 描述列
		{Col: 3, Row: 10}: {"image_2.png"}, // 建议列
		{Col: 4, Row: 12}: {"image_3.png"}, // 第二题回复列
	}

	questions := ParseQuestions(grid, model.TemplateEQ, images, now)
	if len(questions) != 2 {
		t.Fatalf("want 2 questions, got %d", len(questions))
	}

	q1 := questions[0]
	if len(q1.DescriptionImages) != 1 || q1.DescriptionImages[0].Name != "image_1.png" {
		t.Fatalf("descriptionImages = %+v", q1.DescriptionImages)
	}
	if len(q1.SuggestionImages) != 1 || q1.SuggestionImages[0].Name != "image_2.png" {
		t.Fatalf("suggestionImages = %+v", q1.SuggestionImages)
	}
	// 同一行相邻列的图片绝不串列
	if len(q1.CustomerResponseImages) != 0 {
		t.Fatalf("customerResponseImages must be empty, got %+v", q1.CustomerResponseImages)
	}

	q2 := questions[1]
	if len(q2.CustomerResponseImages) != 1 || q2.CustomerResponseImages[0].Name != "image_3.png" {
		t.Fatalf("second question responseImages = %+v", q2.CustomerResponseImages)
	}
	if len(q2.DescriptionImages) != 0 || len(q2.SuggestionImages) != 0 {
		t.Fatalf("images leaked to wrong lists: %+v", q2)
	}

	ref := q1.DescriptionImages[0]
	if ref.Type != model.PNGContentType || ref.UploadURL != "images/image_1.png" {
		t.Fatalf("image ref = %+v", ref)
	}
	if ref.ID == "" || ref.Key == "" {
		t.Fatalf("image ref missing identifiers: %+v", ref)
	}
}

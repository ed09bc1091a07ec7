package parser

import (
	"reflect"
	"testing"
	"time"

	"github.com/BecaLiang/stg-final/internal/model"
)

func TestExtractMetadata_CommonFields(t *testing.T) {
	t.Parallel()

	grid := newTestGrid(t, "EQ Template", map[string]interface{}{
		"C1": "ACME Electronics",
		"E1": "Zhang Wei",
		"C2": "PN-100\n PN-101 \n\nPN-102",
		"E2": "F-200\nF-201",
		"C3": "STG-300",
		"E3": "2024-03-15",
		"C7": "FR-4",
		"E7": "Green",
	})

	meta := ExtractMetadata(grid, model.TemplateEQ)

	if meta.CustomerName != "ACME Electronics" {
		t.Fatalf("customerName = %q", meta.CustomerName)
	}
	if meta.EngineerName == nil || *meta.EngineerName != "Zhang Wei" {
		t.Fatalf("engineerName = %v", meta.EngineerName)
	}
	if want := []string{"PN-100", "PN-101", "PN-102"}; !reflect.DeepEqual(meta.CustomerPN, want) {
		t.Fatalf("customerPN = %v, want %v", meta.CustomerPN, want)
	}
	if want := []string{"F-200", "F-201"}; !reflect.DeepEqual(meta.FactoryPN, want) {
		t.Fatalf("factoryPN = %v, want %v", meta.FactoryPN, want)
	}
	if want := []string{"STG-300"}; !reflect.DeepEqual(meta.StgPN, want) {
		t.Fatalf("stgPN = %v, want %v", meta.StgPN, want)
	}
	if meta.CreatedAt == nil || meta.CreatedAt.Year() != 2024 || meta.CreatedAt.Month() != time.March {
		t.Fatalf("createdAt = %v", meta.CreatedAt)
	}
	if meta.BaseMaterial == nil || *meta.BaseMaterial != "FR-4" {
		t.Fatalf("baseMaterial = %v", meta.BaseMaterial)
	}
	if meta.SolderMask == nil || *meta.SolderMask != "Green" {
		t.Fatalf("solderMask = %v", meta.SolderMask)
	}
}

func TestExtractMetadata_OptionalFieldsAbsent(t *testing.T) {
	t.Parallel()

	grid := newTestGrid(t, "EQ Template", map[string]interface{}{
		"C1": "ACME",
	})

	meta := ExtractMetadata(grid, model.TemplateEQ)
	if meta.EngineerName != nil || meta.BaseMaterial != nil || meta.CreatedAt != nil {
		t.Fatalf("absent optional fields must stay nil: %+v", meta)
	}
	if len(meta.CustomerPN) != 0 || len(meta.StgSignatures) != 0 {
		t.Fatalf("absent lists must stay empty: %+v", meta)
	}
}

func TestExtractMetadata_CEASignatureWindow(t *testing.T) {
	t.Parallel()

	grid := newTestGrid(t, "CEA", map[string]interface{}{
		"C1":  "ACME",
		"A16": "Date:",
		"A17": "2024-03-20",
		"D16": "Customer's Signature",
		"D17": "Alice Wang",
		"A24": "footer",
	})

	meta := ExtractMetadata(grid, model.TemplateCEA)
	if meta.CustomerSignatureDate == nil || meta.CustomerSignatureDate.Day() != 20 {
		t.Fatalf("customerSignatureDate = %v", meta.CustomerSignatureDate)
	}
	if want := []string{"Alice Wang"}; !reflect.DeepEqual(meta.CustomerSignatures, want) {
		t.Fatalf("customerSignatures = %v", meta.CustomerSignatures)
	}
}

func TestExtractMetadata_EQTailSignature(t *testing.T) {
	t.Parallel()

	grid := newTestGrid(t, "EQ Template", map[string]interface{}{
		"C1":  "ACME",
		"A18": "Date / Signature",
		"A19": "2024-04-01",
		"D19": "Bob Li",
		"A22": "end",
	})

	meta := ExtractMetadata(grid, model.TemplateEQ)
	if meta.CustomerSignatureDate == nil || meta.CustomerSignatureDate.Month() != time.April {
		t.Fatalf("customerSignatureDate = %v", meta.CustomerSignatureDate)
	}
	if want := []string{"Bob Li"}; !reflect.DeepEqual(meta.CustomerSignatures, want) {
		t.Fatalf("customerSignatures = %v", meta.CustomerSignatures)
	}
}

func TestExtractMetadata_StarteamFieldsAndSignatures(t *testing.T) {
	t.Parallel()

	grid := newTestGrid(t, "EQ Template", map[string]interface{}{
		"C1":  "ACME",
		"C8":  "Resin plugging",
		"E8":  "250x300",
		"D18": "Signature",
		"D19": "15.03.2024\nJohn Doe",
		"E19": "16.03.2024\nJane Roe",
		"A22": "end",
	})

	meta := ExtractMetadata(grid, model.TemplateStarteam)

	if meta.ViaPluggingType == nil || *meta.ViaPluggingType != "Resin plugging" {
		t.Fatalf("viaPluggingType = %v", meta.ViaPluggingType)
	}
	if meta.PanelSize == nil || *meta.PanelSize != "250x300" {
		t.Fatalf("panelSize = %v", meta.PanelSize)
	}

	if meta.StgSignatureDate == nil || !meta.StgSignatureDate.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("stgSignatureDate = %v", meta.StgSignatureDate)
	}
	if want := []string{"John Doe"}; !reflect.DeepEqual(meta.StgSignatures, want) {
		t.Fatalf("stgSignatures = %v", meta.StgSignatures)
	}
	if meta.CustomerSignatureDate == nil || meta.CustomerSignatureDate.Day() != 16 {
		t.Fatalf("customerSignatureDate = %v", meta.CustomerSignatureDate)
	}
	if want := []string{"Jane Roe"}; !reflect.DeepEqual(meta.CustomerSignatures, want) {
		t.Fatalf("customerSignatures = %v", meta.CustomerSignatures)
	}
}

func TestExtractMetadata_StarteamMalformedDateFallback(t *testing.T) {
	t.Parallel()

	// 日期段解析失败时整段载荷按签名文本保留、日期置空，
	// 这是刻意的回退行为而非错误
	grid := newTestGrid(t, "EQ Template", map[string]interface{}{
		"C1":  "ACME",
		"D18": "Signature",
		"D19": "not-a-date\nJohn Doe",
		"A22": "end",
	})

	meta := ExtractMetadata(grid, model.TemplateStarteam)
	if meta.StgSignatureDate != nil {
		t.Fatalf("stgSignatureDate must be unset, got %v", meta.StgSignatureDate)
	}
	if want := []string{"not-a-date\nJohn Doe"}; !reflect.DeepEqual(meta.StgSignatures, want) {
		t.Fatalf("stgSignatures = %v", meta.StgSignatures)
	}
}

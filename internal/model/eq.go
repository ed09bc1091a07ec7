package model

import "time"

// TemplateKind 已知的三种模板布局
type TemplateKind string

const (
	TemplateCEA      TemplateKind = "CEA"      // 客户工程确认单
	TemplateEQ       TemplateKind = "EQ"       // 工程问题问卷
	TemplateStarteam TemplateKind = "starteam" // 扩展版问卷（多一列客户决策）
	TemplateNone     TemplateKind = ""         // 无法识别
)

// StatusClosed 本管线只产出已关闭的 EQ 记录
const StatusClosed = "Closed"

// XLSXContentType 原始表格文件的 MIME 类型
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PNGContentType 提取图片统一重编码为 PNG
const PNGContentType = "image/png"

// FileRef 文件引用（图片或原始表格），内嵌于 Document/Question
type FileRef struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Key       string    `json:"key"`
	UploadURL string    `json:"uploadUrl"`
}

// Question 单条问题记录，三组图片列表相互独立
type Question struct {
	ID                     string     `json:"id"`
	CreatedAt              time.Time  `json:"createdAt"`
	No                     string     `json:"no"`
	Description            *string    `json:"description"`
	Suggestion             *string    `json:"suggestion"`
	CustomerResponse       *string    `json:"customerResponse"`
	DescriptionImages      []FileRef  `json:"descriptionImages"`
	SuggestionImages       []FileRef  `json:"suggestionImages"`
	CustomerResponseImages []FileRef  `json:"customerResponseImages"`
}

// Document 规范化输出记录（EQ），与模板来源无关
type Document struct {
	ID                    string     `json:"id"`
	CreatedAt             time.Time  `json:"createdAt"`
	CustomerName          string     `json:"customerName"`
	EngineerName          *string    `json:"engineerName"`
	CustomerPN            []string   `json:"customerPN"`
	FactoryPN             []string   `json:"factoryPN"`
	StgPN                 []string   `json:"stgPN"`
	BaseMaterial          *string    `json:"baseMaterial"`
	SolderMask            *string    `json:"solderMask"`
	ViaPluggingType       *string    `json:"viaPluggingType"`
	PanelSize             *string    `json:"panelSize"`
	Status                string     `json:"status"`
	StgSignatureDate      *time.Time `json:"stgSignatureDate"`
	StgSignatures         []string   `json:"stgSignatures"`
	CustomerSignatureDate *time.Time `json:"customerSignatureDate"`
	CustomerSignatures    []string   `json:"customerSignatures"`
	FileName              string     `json:"fileName"`
	OriginalFile          FileRef    `json:"originalFile"`
	Questions             []Question `json:"questions"`
}

// Metadata 元数据提取结果（Document 去掉 id/questions/originalFile 的部分）
type Metadata struct {
	CustomerName          string
	EngineerName          *string
	CustomerPN            []string
	FactoryPN             []string
	StgPN                 []string
	BaseMaterial          *string
	SolderMask            *string
	ViaPluggingType       *string
	PanelSize             *string
	StgSignatureDate      *time.Time
	StgSignatures         []string
	CustomerSignatureDate *time.Time
	CustomerSignatures    []string
	CreatedAt             *time.Time // 表头日期单元格，存在且可解析时填入
}

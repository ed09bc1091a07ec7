package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// SplitLines 将多行单元格按换行拆分为去空白后的非空列表
// 拆分是幂等的：对拼接结果再拆分得到同一列表
func SplitLines(s string) []string {
	parts := strings.Split(s, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsDigits 判断是否为纯数字串（问题行的序号判定条件）
func IsDigits(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// cellDateFormats 表头/签名区日期单元格可能出现的文本格式
// excelize 按单元格数字格式输出，不同来源文件差异较大
var cellDateFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01-02-06",
	"1/2/06 15:04",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"2006.01.02",
	"02.01.2006",
}

// ParseCellDate 尽力解析日期单元格
// 文本格式逐一尝试，纯数字按 Excel 序列日期处理；解析失败返回 nil
func ParseCellDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range cellDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return &t
		}
	}

	return nil
}

// ParseSignatureDate 签名载荷首行的日期，严格按 DD.MM.YYYY 解析
func ParseSignatureDate(s string) (time.Time, bool) {
	t, err := time.Parse("02.01.2006", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// optional 非空白文本转可选字符串，空白返回 nil
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

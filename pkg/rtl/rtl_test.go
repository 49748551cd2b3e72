package rtl

import "testing"

func TestContainsArabic(t *testing.T) {
	cases := map[string]bool{
		"":           false,
		"Ahmed":      false,
		"2024-01-10": false,
		"10:00 ص":    true,
		"الإثنين":    true,
	}
	for in, want := range cases {
		if got := ContainsArabic(in); got != want {
			t.Errorf("ContainsArabic(%q)=%v，期望 %v", in, got, want)
		}
	}
}

func TestShape_NonArabicPassThrough(t *testing.T) {
	for _, s := range []string{"", "Ahmed", "7.5", "2024-01-10"} {
		if got := Shape(s); got != s {
			t.Errorf("非阿拉伯文本应原样返回: %q -> %q", s, got)
		}
	}
}

func TestShape_ArabicUsesPresentationForms(t *testing.T) {
	in := "مرحبا"
	out := Default.Shape(in)
	if out == "" || out == in {
		t.Fatalf("阿拉伯文本应被转换，实际=%q", out)
	}
	found := false
	for _, r := range out {
		if r >= 0xFE70 && r <= 0xFEFF {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("输出应包含阿拉伯表现形式字符，实际=%q", out)
	}
}

func TestShaperFunc(t *testing.T) {
	var s Shaper = ShaperFunc(func(text string) string { return "[" + text + "]" })
	if got := s.Shape("x"); got != "[x]" {
		t.Errorf("ShaperFunc 适配错误: %s", got)
	}
}

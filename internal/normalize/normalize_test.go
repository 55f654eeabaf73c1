package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"fullwidth digits", "ＣＢ１２５Ｒ", "CB125R"},
		{"halfwidth equals fullwidth", "CB125R", "CB125R"},
		{"lower case folded", "cb400 super four", "CB400 SUPER FOUR"},
		{"count suffix stripped", "CB400SF (7台)", "CB400SF"},
		{"fullwidth parens stripped", "ニンジャ250（新車）", "ニンジャ250"},
		{"stacked suffixes", "PCX (JF81) (3台)", "PCX"},
		{"inner parens kept", "Z900RS(カフェ) SE", "Z900RS(カフェ) SE"},
		{"long vowel folded", "スーパーカブ110", "ス-パ-カブ110"},
		{"dash family folded", "YZF—R1 – SP", "YZF-R1 - SP"},
		{"whitespace collapsed", "  MT-09 \t  SP ", "MT-09 SP"},
		{"ideographic space", "ホンダ　CBR", "ホンダ CBR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.in))
		})
	}
}

func TestAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"kanji blocks", "東京都渋谷区1丁目1番7号", "東京都渋谷区1-1-7"},
		{"hyphenated", "東京都渋谷区1-1-7", "東京都渋谷区1-1-7"},
		{"fullwidth digits and dash", "東京都渋谷区１－１－７", "東京都渋谷区1-1-7"},
		{"banchi", "大阪府大阪市北区梅田3番地1", "大阪府大阪市北区梅田3-1"},
		{"spaces removed", "東京都 渋谷区 1-1-7", "東京都渋谷区1-1-7"},
		{"long vowel as dash", "渋谷区1ー1ー7", "渋谷区1-1-7"},
		{"romanized chome", "Shibuya 1-chome-1-7", "shibuya1-1-7"},
		{"romanized plain", "Shibuya 1-1-7", "shibuya1-1-7"},
		{"edge hyphens trimmed", "-1-2-", "1-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Address(tt.in))
		})
	}
}

func TestAddress_BlockVariantsCompareEqual(t *testing.T) {
	assert.Equal(t, Address("東京都渋谷区1丁目1番7号"), Address("東京都渋谷区1-1-7"))
	assert.Equal(t, Address("Shibuya 1-1-7"), Address("Shibuya 1-chome-1-7"))
}

func TestIdempotent(t *testing.T) {
	samples := []string{
		"",
		"CB400SF (7台)",
		"ＣＢ１２５Ｒ（新車）",
		"スーパーカブ１１０",
		"YZF—R1 – SP",
		"東京都渋谷区1丁目1番7号",
		"東京都渋谷区１－１－７　ビル２Ｆ",
		"Shibuya 1-chome-1-7",
		"Shibuya 1-chomechome-1-7",
		"1--chome 2 banchibanchi",
		"--番--号--",
		"㎏ ㍉ Ⅻ ｶﾞ",
		"(only annotation)",
		"a ( b ) ( c )",
	}

	for _, s := range samples {
		once := Name(s)
		assert.Equal(t, once, Name(once), "Name(%q)", s)

		addr := Address(s)
		assert.Equal(t, addr, Address(addr), "Address(%q)", s)
	}
}

func TestAddress_CollapsesNestedBlocks(t *testing.T) {
	assert.Equal(t, "shibuya1-1-7", Address("Shibuya 1-chomechome-1-7"))
	assert.Equal(t, "1-2", Address("1--chome 2 banchi-"))
}

func TestWidth(t *testing.T) {
	assert.Equal(t, "59.8万円", Width("５９．８万円"))
	assert.Equal(t, "1,200km", Width("１，２００ｋｍ"))
	assert.Equal(t, "Abc", Width("Ａｂｃ"))
}

func TestStripAnnotation(t *testing.T) {
	assert.Equal(t, "CB400SF", StripAnnotation(" CB400SF (7台) "))
	assert.Equal(t, "ニンジャ250", StripAnnotation("ニンジャ250（新車）"))
	assert.Equal(t, "Z900RS SE", StripAnnotation("Z900RS(カフェ) SE"))
	assert.Equal(t, "", StripAnnotation(""))
}

func TestDisplacement(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"CB400 SUPER FOUR", 400, true},
		{"ＣＢ１２５Ｒ", 125, true},
		{"Ninja 2020 650", 650, true},
		{"PCX", 0, false},
		{"Z1", 0, false},
		{"GSX1300R", 1300, true},
		{"V-MAX 2500", 0, false},
	}

	for _, tt := range tests {
		got, ok := Displacement(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

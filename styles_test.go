package imgtag

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStyle(t *testing.T) {
	tests := []test{
		{in: "color: red", expected: "color: red"},
		{in: "  color: red;  ", expected: "color: red"},
		{in: "color: red; width: 10px;", expected: "color: red; width: 10px"},
		{in: "color:red;width:10px", expected: "color: red; width: 10px"},
		{in: "color: \\72 ed", expected: "color: red"},
		{in: "font-family: 'Arial'", expected: "font-family: 'Arial'"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := SanitizeStyle(tt.in)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, got)

			again, ok := SanitizeStyle(got)
			assert.True(t, ok)
			assert.Equal(t, got, again)
		})
	}
}

func TestSanitizeStyle_unsafe(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"width: expression(alert(1))",
		"width: EXPRESSION(alert(1))",
		"width: expr/**/ession(alert(1))",
		"width: e\\78pression(alert(1))",
		"width: e\\000078pression(alert(1))",
		"background: url(javascript:alert(1))",
		"background: url('javascript:alert(1)')",
		"background-image: url(https://example.com/a.png)",
		"background-image: image-set('a.png' 1x)",
		"behavior: url(x.htc)",
		"-moz-binding: foo",
		"-ms-behavior: foo",
		"@import 'evil.css'",
		"color: red; } body { color: blue",
		"width: calc(100% - 10px",
		"width: calc(100% - 10px))",
		"font-family: \"Arial",
		"color: red\\",
		"color: \\d800",
		"content: '</style><script>'",
		"color: red <!--",
		"color: \\5c 41",
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			got, ok := SanitizeStyle(in)
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}

func TestRemoveUnicode(t *testing.T) {
	tests := []test{
		{in: "\\72 ed", expected: "red"},
		{in: "\\000072", expected: "r"},
		{in: "\\41", expected: "A"},
		{in: "plain", expected: "plain"},
		{in: "\\1000072", expected: ""},
		{in: "\\5c 41", expected: "\\41"},
		{in: "\\d800", expected: ""},
		{in: "\\20 x", expected: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, removeUnicode(tt.in))
		})
	}
}

func TestSanitizeStyle_longEscapes(t *testing.T) {
	const n = 100000
	start := time.Now()
	got, ok := SanitizeStyle("color: " + strings.Repeat("\\41 ", n))
	elapsed := time.Since(start)

	assert.True(t, ok)
	assert.Equal(t, "color: "+strings.Repeat("A", n), got)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestRemoveUnicode_linear(t *testing.T) {
	measure := func(n int) time.Duration {
		s := strings.Repeat("\\41 ", n)
		start := time.Now()
		assert.Equal(t, strings.Repeat("A", n), removeUnicode(s))
		return time.Since(start)
	}

	measure(1000) // warm up
	small, large := measure(20000), measure(320000)
	// 16 times the input, quadratic decoding would take about 256 times longer
	assert.Less(t, large, 64*small+50*time.Millisecond)
}

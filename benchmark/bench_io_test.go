package benchmark

import (
	"bytes"
	"testing"

	cmdio "github.com/dzonerzy/go-cmdline/io"
	"github.com/fatih/color"
)

// Category: io

func BenchmarkIO_Style(b *testing.B) {
	io := cmdio.New().WithOut(&bytes.Buffer{}).ForceColor()
	s := "hello world"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = io.Style(color.FgRed).Sprint(s)
	}
}

func BenchmarkIO_Styling(b *testing.B) {
	io := cmdio.New().WithOut(&bytes.Buffer{}).ForceColor()
	s := "hello world"
	b.Run("Bold", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = io.Bold(s)
		}
	})
	b.Run("NoColor", func(b *testing.B) {
		io := cmdio.New().WithOut(&bytes.Buffer{}).NoColor()
		for i := 0; i < b.N; i++ {
			_ = io.Bold(s)
		}
	})
}

func BenchmarkIO_Logger(b *testing.B) {
	buf := &bytes.Buffer{}
	log := cmdio.NewLogger(cmdio.New().WithOut(buf).WithErr(buf).NoColor()).WithFormat(cmdio.LogFormatTagged)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Error("tool: unknown option: --%s", "verbos")
		buf.Reset()
	}
}

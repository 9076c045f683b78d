package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/vovakirdan/wildgrove/internal/worldgen"
)

func TestWriteLayout(t *testing.T) {
	p := worldgen.DefaultParams()
	s := worldgen.Summarize(worldgen.Generate(42, p), p)

	var buf bytes.Buffer
	if err := writeLayout(&buf, 42, p, false); err != nil {
		t.Fatalf("writeLayout() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"seed 42: 4000x4000 world",
		fmt.Sprintf("trees   %d", s.Trees),
		fmt.Sprintf("rocks   %d", s.Rocks),
		"stream  64 zones",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteLayoutList(t *testing.T) {
	p := worldgen.DefaultParams()
	p.Obstacles = 5
	p.StreamZones = 3

	var buf bytes.Buffer
	if err := writeLayout(&buf, 7, p, true); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	env := worldgen.Generate(7, p)
	if want := 5 + len(env.All()); len(lines) != want {
		t.Errorf("got %d lines, expected %d", len(lines), want)
	}
	if !strings.Contains(buf.String(), "stream-0") {
		t.Error("list should include stream zones")
	}
}

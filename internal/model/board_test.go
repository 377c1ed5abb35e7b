package model

import "testing"

func TestCutFwSplitsLength(t *testing.T) {
	b := NewBoard(2000, 600)
	b.Serial = 3

	tail := b.CutFw(1200)

	if b.Length != 1200 || !b.CutTail || b.CutHead {
		t.Errorf("head piece wrong: %+v", *b)
	}
	if tail.Length != 800 || !tail.CutHead || tail.CutTail {
		t.Errorf("tail piece wrong: %+v", *tail)
	}
	if b.Width != 600 || tail.Width != 600 {
		t.Errorf("width changed: head=%.0f tail=%.0f", b.Width, tail.Width)
	}
	if b.Length+tail.Length != 2000 {
		t.Errorf("lengths do not add up: %.0f+%.0f", b.Length, tail.Length)
	}
	if tail.Serial != 3 || tail.Generation != 1 {
		t.Errorf("expected tail to trace back to #3 generation 1, got #%d gen %d", tail.Serial, tail.Generation)
	}
}

func TestCutFwCopiesExistingFlags(t *testing.T) {
	b := NewBoard(2000, 600)
	b.CutLeft = true

	tail := b.CutFw(500)
	if !tail.CutLeft {
		t.Error("tail should inherit the sawn left edge")
	}
	if tail.CutRight {
		t.Error("tail should not gain a sawn right edge")
	}
}

func TestCutLeftSideSplitsWidth(t *testing.T) {
	b := NewBoard(2000, 600)

	strip := b.CutLeftSide(150)

	if b.Width != 450 || !b.CutLeft {
		t.Errorf("narrowed board wrong: %+v", *b)
	}
	if strip.Width != 150 || !strip.CutRight || strip.CutLeft {
		t.Errorf("strip wrong: %+v", *strip)
	}
	if b.Length != 2000 || strip.Length != 2000 {
		t.Errorf("length changed: board=%.0f strip=%.0f", b.Length, strip.Length)
	}
}

func TestCutPreconditionsPanic(t *testing.T) {
	cases := []struct {
		name string
		cut  func(b *Board)
	}{
		{"cross cut zero", func(b *Board) { b.CutFw(0) }},
		{"cross cut negative", func(b *Board) { b.CutFw(-5) }},
		{"cross cut full length", func(b *Board) { b.CutFw(2000) }},
		{"rip zero", func(b *Board) { b.CutLeftSide(0) }},
		{"rip full width", func(b *Board) { b.CutLeftSide(600) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for %s", tc.name)
				}
			}()
			tc.cut(NewBoard(2000, 600))
		})
	}
}

func TestFactoryEdges(t *testing.T) {
	b := NewBoard(2000, 600)
	if b.FactoryEdges() != 4 {
		t.Errorf("expected 4 factory edges on a fresh board, got %d", b.FactoryEdges())
	}
	b.CutFw(1000)
	b.CutLeftSide(100)
	if b.FactoryEdges() != 2 {
		t.Errorf("expected 2 factory edges after two cuts, got %d", b.FactoryEdges())
	}
	if !b.IsCut(EdgeTail) || !b.IsCut(EdgeLeft) || b.IsCut(EdgeHead) || b.IsCut(EdgeRight) {
		t.Errorf("unexpected flags: %s", b.String())
	}
}

func TestBoardString(t *testing.T) {
	b := Board{Serial: 7, Length: 1000, Width: 600, CutHead: true, CutLeft: true}
	if got := b.String(); got != "#7.0 1000x600 [H-L-]" {
		t.Errorf("unexpected string %q", got)
	}
}

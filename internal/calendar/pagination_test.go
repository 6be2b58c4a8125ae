package calendar

import "testing"

func TestNormalizePage_Defaults(t *testing.T) {
	page, size, offset := NormalizePage(0, 0)
	if page != 1 || size != defaultPageSize || offset != 0 {
		t.Fatalf("unexpected defaults: %d %d %d", page, size, offset)
	}

	_, size, offset = NormalizePage(3, 1000)
	if size != maxPageSize || offset != 2*maxPageSize {
		t.Fatalf("expected page size capped, got size=%d offset=%d", size, offset)
	}
}

func TestNewPage_HasNext(t *testing.T) {
	p := NewPage([]string{"a", "b"}, 1, 2, 5)
	if !p.HasNext || p.HasPrev {
		t.Fatalf("unexpected flags: %+v", p)
	}

	p = NewPage([]string{"e"}, 3, 2, 5)
	if p.HasNext || !p.HasPrev {
		t.Fatalf("unexpected flags on last page: %+v", p)
	}
}

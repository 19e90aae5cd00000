package pool

import (
	"sync"
	"testing"
)

func TestPathBuilder_Basic(t *testing.T) {
	pb := AcquirePathBuilder()
	defer pb.Release()

	pb.WriteString("members")
	pb.AppendIndex(3)
	pb.AppendField("dateOfBirth")

	if got := pb.String(); got != "members[3].dateOfBirth" {
		t.Errorf("String() = %q; want %q", got, "members[3].dateOfBirth")
	}
}

func TestPathBuilder_Reset(t *testing.T) {
	pb := AcquirePathBuilder()
	defer pb.Release()

	pb.WriteString("members")
	pb.Reset()

	if pb.Len() != 0 {
		t.Errorf("Len() after Reset = %d; want 0", pb.Len())
	}
	if pb.String() != "" {
		t.Errorf("String() after Reset = %q; want \"\"", pb.String())
	}
}

func TestPathBuilder_AppendFieldOnEmpty(t *testing.T) {
	pb := AcquirePathBuilder()
	defer pb.Release()

	pb.AppendField("version")

	if got := pb.String(); got != "version" {
		t.Errorf("String() = %q; want %q (no leading dot)", got, "version")
	}
}

func TestElementPath(t *testing.T) {
	tests := []struct {
		collection string
		index      int
		want       string
	}{
		{"members", 0, "members[0]"},
		{"relationships", 12, "relationships[12]"},
	}

	for _, tt := range tests {
		if got := ElementPath(tt.collection, tt.index); got != tt.want {
			t.Errorf("ElementPath(%q, %d) = %q; want %q", tt.collection, tt.index, got, tt.want)
		}
	}
}

func TestFieldPath(t *testing.T) {
	tests := []struct {
		collection string
		index      int
		field      string
		want       string
	}{
		{"members", 0, "id", "members[0].id"},
		{"relationships", 7, "person2Id", "relationships[7].person2Id"},
	}

	for _, tt := range tests {
		if got := FieldPath(tt.collection, tt.index, tt.field); got != tt.want {
			t.Errorf("FieldPath(%q, %d, %q) = %q; want %q", tt.collection, tt.index, tt.field, got, tt.want)
		}
	}
}

func TestFieldPath_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got := FieldPath("members", n, "id")
				want := ElementPath("members", n) + ".id"
				if got != want {
					t.Errorf("FieldPath = %q; want %q", got, want)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

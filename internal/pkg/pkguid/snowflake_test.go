package pkguid

import "testing"

func TestGenerateRandomNodeIDRange(t *testing.T) {
	id, err := generateRandomNodeID()
	if err != nil {
		t.Fatalf("generateRandomNodeID: %v", err)
	}
	if id < 0 || id > 1023 {
		t.Fatalf("expected id within 0..1023, got %d", id)
	}
}

func TestSnowflakeGenerateIncreasing(t *testing.T) {
	gen, err := NewSnowflake()
	if err != nil {
		t.Fatalf("NewSnowflake: %v", err)
	}
	id1 := gen.Generate()
	id2 := gen.Generate()
	if id2 <= id1 {
		t.Fatalf("expected increasing ids, got %d then %d", id1, id2)
	}
}

func TestNewSnowflakeNodeRejectsOutOfRange(t *testing.T) {
	if _, err := NewSnowflakeNode(4096); err == nil {
		t.Fatal("expected error for node id above 1023")
	}
}

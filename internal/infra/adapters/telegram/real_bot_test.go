package telegram

import (
	"strings"
	"testing"
)

func TestSplitMessage(t *testing.T) {
	if got := splitMessage("short", 3900); len(got) != 1 || got[0] != "short" {
		t.Fatalf("short text must come back as one chunk, got %v", got)
	}

	long := strings.Repeat("x", 3900*2+10)
	chunks := splitMessage(long, 3900)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 3900 || len(chunks[1]) != 3900 || len(chunks[2]) != 10 {
		t.Errorf("chunk lengths = %d %d %d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
	if strings.Join(chunks, "") != long {
		t.Error("chunks must reassemble into the original text")
	}
}

func TestAdminIDsMap(t *testing.T) {
	r := &RealTelegramBotAdapter{
		adminIDsMap: map[int64]struct{}{1111: {}, 2222: {}},
	}
	if _, ok := r.adminIDsMap[1111]; !ok {
		t.Fatal("expected 1111 to be admin")
	}
	if _, ok := r.adminIDsMap[3333]; ok {
		t.Fatal("expected 3333 to NOT be admin")
	}
}

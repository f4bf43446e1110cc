package identity

import (
	"strconv"
	"strings"
	"sync/atomic"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

func SessionUUID(name string) uuid.UUID {
	return UUID("go-pagebuilder:session:" + strings.ToLower(strings.TrimSpace(name)))
}

func ItemUUID(session string, seq uint64) uuid.UUID {
	return UUID("go-pagebuilder:item:" + strings.ToLower(strings.TrimSpace(session)) + ":" + strconv.FormatUint(seq, 10))
}

// ItemSequence returns a generator producing reproducible item ids for a
// session: the n-th call always yields ItemUUID(session, n).
func ItemSequence(session string) func() string {
	var seq atomic.Uint64
	return func() string {
		return ItemUUID(session, seq.Add(1)).String()
	}
}

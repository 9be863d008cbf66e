package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identifier prefixes.
const (
	PrefixUser       = "user"
	PrefixCourse     = "course"
	PrefixModule     = "mod"
	PrefixAssignment = "ass"
	PrefixSubmission = "sub"
)

// IDGenerator issues timestamp-derived identifiers such as course-1717171717171-1a2b3c4d.
type IDGenerator struct {
	now    func() time.Time
	suffix func() string
}

// NewIDGenerator returns a generator using now as its clock.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now, suffix: randomSuffix}
}

// New returns a fresh identifier with the given prefix.
func (g *IDGenerator) New(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, g.now().UnixMilli(), g.suffix())
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

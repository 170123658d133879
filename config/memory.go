package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// MemorySize is a JVM heap size in megabytes. It implements pflag.Value so
// commands accept the familiar "4G" / "2048M" spellings directly.
type MemorySize uint64

var _ pflag.Value = (*MemorySize)(nil)

const DefaultMaxHeap = MemorySize(3072)
const DefaultMinHeap = MemorySize(2048)

func (m MemorySize) String() string {
	if m >= 1024 && m%1024 == 0 {
		return fmt.Sprintf("%dG", uint64(m)/1024)
	}
	return fmt.Sprintf("%dM", uint64(m))
}

func (m *MemorySize) Set(value string) error {
	parsed, err := ParseMemorySize(value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m MemorySize) Type() string {
	return "memory"
}

// JvmArg renders the size for -Xmx/-Xms style options.
func (m MemorySize) JvmArg(prefix string) string {
	return fmt.Sprintf("%s%dM", prefix, uint64(m))
}

// ParseMemorySize reads "4G", "4096M" or a bare megabyte count.
func ParseMemorySize(value string) (MemorySize, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("empty memory size")
	}

	multiplier := uint64(1)
	switch trimmed[len(trimmed)-1] {
	case 'g', 'G':
		multiplier = 1024
		trimmed = trimmed[:len(trimmed)-1]
	case 'm', 'M':
		trimmed = trimmed[:len(trimmed)-1]
	}

	count, err := strconv.ParseUint(strings.TrimSpace(trimmed), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid memory size %q: %w", value, err)
	}
	if count == 0 {
		return 0, fmt.Errorf("memory size must be positive")
	}
	return MemorySize(count * multiplier), nil
}

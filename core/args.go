package core

import (
	"net"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"
)

var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

const longFlagPrefix = "--"

// argSlot is one transform-phase result: either resolved text or a removal
// marker awaiting the filter phase.
type argSlot struct {
	text string
	drop bool
}

// ArgBuilder resolves argument templates against one launch's context.
// Resolution never fails outright; entries that cannot be resolved are
// logged and filtered so the vector always materializes.
type ArgBuilder struct {
	Ctx    *ArgContext
	Rules  RuleContext
	Logger hclog.Logger
}

func (b *ArgBuilder) logger() hclog.Logger {
	if b.Logger == nil {
		return hclog.NewNullLogger()
	}
	return b.Logger
}

// ResolveArgs runs a template through the two phases: transform every entry
// into resolved text or a removal marker, then filter the markers out along
// with any orphaned long flags.
func (b *ArgBuilder) ResolveArgs(tmpl []Argument) []string {
	return filterSlots(b.transformTemplate(tmpl))
}

// ResolveLegacyArgs handles the old single-string template form, which is
// whitespace-separated and carries no conditional entries.
func (b *ArgBuilder) ResolveLegacyArgs(minecraftArguments string) []string {
	fields := strings.Fields(minecraftArguments)
	tmpl := make([]Argument, len(fields))
	for i, f := range fields {
		tmpl[i] = Argument{Raw: f}
	}
	return b.ResolveArgs(tmpl)
}

func (b *ArgBuilder) transformTemplate(tmpl []Argument) []argSlot {
	slots := make([]argSlot, 0, len(tmpl))
	for _, a := range tmpl {
		if a.Cond != nil {
			outcome := b.Rules.Evaluate(a.Cond.Rules)
			if !outcome.Allowed {
				slots = append(slots, argSlot{drop: true})
				continue
			}
			values := []string(a.Cond.Value)
			if outcome.ReplaceWith != nil {
				values = outcome.ReplaceWith
			}
			// Spliced values re-enter resolution at their own position.
			for _, v := range values {
				slots = append(slots, b.resolveSlot(v))
			}
			continue
		}
		slots = append(slots, b.resolveSlot(a.Raw))
	}
	return slots
}

// resolveSlot resolves one template string. A string that is exactly one
// placeholder token resolves whole-slot; embedded tokens inside longer
// strings are swept in-string, with unresolved ones deleted from the string
// rather than dooming the entry.
func (b *ArgBuilder) resolveSlot(raw string) argSlot {
	if m := placeholderPattern.FindStringSubmatch(raw); m != nil && m[0] == raw {
		value, null, known := ResolvePlaceholder(m[1], b.Ctx)
		if !known {
			b.logger().Warn("unrecognized argument placeholder", "token", raw)
			return argSlot{text: raw, drop: true}
		}
		if null {
			if Placeholder(m[1]) == PlaceholderAccessToken {
				b.logger().Error("session has no access token, launching without one")
			} else {
				b.logger().Debug("placeholder has no value for this launch", "token", raw)
			}
			return argSlot{drop: true}
		}
		return argSlot{text: value}
	}

	text := placeholderPattern.ReplaceAllStringFunc(raw, func(tok string) string {
		name := tok[2 : len(tok)-1]
		value, null, known := ResolvePlaceholder(name, b.Ctx)
		if !known || null {
			b.logger().Warn("dropping embedded placeholder", "token", tok, "entry", raw)
			return ""
		}
		return value
	})
	return argSlot{text: text, drop: text == ""}
}

// filterSlots removes every marked or empty entry. A removed entry whose
// predecessor is a long flag takes the flag with it, since a flag with no
// value is worse than no flag.
func filterSlots(slots []argSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if s.drop || s.text == "" {
			if n := len(out); n > 0 && strings.HasPrefix(out[n-1], longFlagPrefix) {
				out = out[:n-1]
			}
			continue
		}
		out = append(out, s.text)
	}
	return out
}

// Quick-play connection flags exist from this game version on; older
// versions take the separate host and port flags.
const quickPlayVersion = "1.20"

// AutoConnectArgs returns the flags that join the server straight from
// startup.
func AutoConnectArgs(address, mcVersion string) []string {
	host, port := SplitServerAddress(address)
	if MinecraftAtLeast(quickPlayVersion, mcVersion) {
		return []string{"--quickPlayMultiplayer", net.JoinHostPort(host, port)}
	}
	return []string{"--server", host, "--port", port}
}

const defaultGamePort = "25565"

// SplitServerAddress splits host:port, defaulting the port when the
// address carries none.
func SplitServerAddress(address string) (host, port string) {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return address, defaultGamePort
	}
	if port == "" {
		port = defaultGamePort
	}
	return host, port
}

const (
	javaLibraryPathProp  = "-Djava.library.path="
	lwjglLibraryPathProp = "-Dorg.lwjgl.librarypath="
	threadAffinityFlag   = "-XstartOnFirstThread"
)

// EnsureNativePathArgs is the safety net run after all template
// processing: guarantee the native-library path property is set, and on
// darwin guarantee the lwjgl path property too. The lwjgl entry sits right
// after the thread-affinity flag when present, else right after the library
// path property, else at the safe insertion point.
func EnsureNativePathArgs(args []string, nativesDir, platform string) []string {
	if indexOfPrefix(args, javaLibraryPathProp) == -1 {
		args = insertAtSafePoint(args, javaLibraryPathProp+nativesDir)
	}
	if platform != "darwin" || indexOfPrefix(args, lwjglLibraryPathProp) != -1 {
		return args
	}

	entry := lwjglLibraryPathProp + nativesDir
	if i := indexOf(args, threadAffinityFlag); i != -1 {
		return insertAt(args, i+1, entry)
	}
	if i := indexOfPrefix(args, javaLibraryPathProp); i != -1 {
		return insertAt(args, i+1, entry)
	}
	return insertAtSafePoint(args, entry)
}

// insertAtSafePoint places an entry where it cannot split a flag from its
// value: before the classpath flag, else before the first non-flag token,
// else at the end.
func insertAtSafePoint(args []string, entry string) []string {
	if i := indexOfClasspathFlag(args); i != -1 {
		return insertAt(args, i, entry)
	}
	for i, a := range args {
		if !strings.HasPrefix(a, "-") {
			return insertAt(args, i, entry)
		}
	}
	return append(args, entry)
}

func indexOfClasspathFlag(args []string) int {
	for i, a := range args {
		if a == "-cp" || a == "-classpath" {
			return i
		}
	}
	return -1
}

func indexOf(args []string, want string) int {
	for i, a := range args {
		if a == want {
			return i
		}
	}
	return -1
}

func indexOfPrefix(args []string, prefix string) int {
	for i, a := range args {
		if strings.HasPrefix(a, prefix) {
			return i
		}
	}
	return -1
}

func insertAt(args []string, i int, entry string) []string {
	args = append(args, "")
	copy(args[i+1:], args[i:])
	args[i] = entry
	return args
}

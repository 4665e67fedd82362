package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/irahardianto/formatgate/internal/platform/logger"
)

// git config --get exits 1 when the key is not set.
const exitKeyNotSet = 1

// ConfigValue reads key with `git config --get`. The second return value is
// false when the key is not set.
func (s *ExecService) ConfigValue(ctx context.Context, key string) (string, bool, error) {
	out, err := s.runGit(ctx, "config", "--get", key)
	if err != nil {
		if isKeyNotSet(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading git config %s: %w", key, err)
	}
	return strings.TrimRight(out, "\r\n"), true, nil
}

// ConfigBool reads key with `git config --get` and interprets the raw value
// with parseBool. An unset key yields def.
func (s *ExecService) ConfigBool(ctx context.Context, key string, def bool) (bool, error) {
	v, ok, err := s.ConfigValue(ctx, key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	b := parseBool(v)
	logger.FromContext(ctx).Debug("read boolean config", "key", key, "value", v, "enabled", b)
	return b, nil
}

// parseBool treats git's false spellings (false, no, off, 0) as false and
// every other value as true, including values git itself rejects.
func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "false", "no", "off", "0":
		return false
	default:
		return true
	}
}

func isKeyNotSet(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr) && cmdErr.ExitCode == exitKeyNotSet
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/formlogic/pkg/poll"
	"github.com/aretw0/formlogic/pkg/ports"
)

// ErrAlreadyRunning is returned by Begin when another caller owns the operation.
var ErrAlreadyRunning = ports.ErrAlreadyRunning

// beginScript marks the operation running unless it already is.
// KEYS[1]: status key; ARGV[1]: running report; ARGV[2]: ttl in milliseconds.
const beginScript = `
local cur = redis.call("get", KEYS[1])
if cur and string.find(cur, '"status":"running"', 1, true) then
	return 0
end
redis.call("set", KEYS[1], ARGV[1])
if tonumber(ARGV[2]) > 0 then
	redis.call("pexpire", KEYS[1], ARGV[2])
end
return 1
`

// Begin atomically claims operation id by publishing a running report, so that two
// callers starting the same operation concurrently do not both run it. It fails with
// ErrAlreadyRunning while a running report is stored. Finished operations may be
// claimed again.
func (s *StatusStore) Begin(ctx context.Context, id string, message string) error {
	data, err := json.Marshal(poll.StatusReport{Status: poll.StatusRunning, Message: message})
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	claimed, err := s.client.Eval(ctx, beginScript, []string{s.key(id)}, data, s.ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("redis error claiming operation: %w", err)
	}
	if claimed == 0 {
		return fmt.Errorf("%w: %s", ErrAlreadyRunning, id)
	}
	return nil
}

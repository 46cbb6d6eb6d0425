package form

import (
	"net"
	"regexp"

	"github.com/dustin/go-humanize"
)

var (
	numericRe  = regexp.MustCompile(`^[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?$`)
	hostnameRe = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*\.?$`)
)

var patternTypes = map[PatternType]func(string) bool{
	PatternNumeric:     isNumeric,
	PatternHostname:    isHostname,
	PatternHostAddress: isHostAddress,
	PatternBinaryUnit:  isBinaryUnit,
}

func isNumeric(s string) bool {
	return numericRe.MatchString(s)
}

func isHostname(s string) bool {
	return len(s) <= 253 && hostnameRe.MatchString(s)
}

func isIP(s string) bool {
	return net.ParseIP(s) != nil
}

func isHostAddress(s string) bool {
	return isIP(s) || isHostname(s)
}

// isBinaryUnit accepts sizes such as "512", "10 MiB" or "1.5GB".
func isBinaryUnit(s string) bool {
	_, err := humanize.ParseBytes(s)
	return err == nil
}

// SPDX-FileCopyrightText: Copyright The Desktop Commander Authors
// SPDX-License-Identifier: Apache-2.0

// Package cmdguard decides whether a command line may be handed to the
// shell, based on a configured blocklist of executable names.
//
// The gate splits the command line on shell chaining operators and
// matches the leading executable token of every sub-command against the
// blocklist. It deliberately does not parse full shell grammar; quoting
// and expansion tricks can both evade and over-trigger it. It is a guard
// rail in front of the spawner, not a sandbox.
package cmdguard

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
)

// ErrBlocked is wrapped by Validate when a blocked executable is found.
var ErrBlocked = errors.New("command is blocked")

// chainSplitter matches the shell chaining operators that separate
// sub-commands: "&&", "||", ";", "|", and newlines.
var chainSplitter = regexp.MustCompile(`\|\||&&|[;|\n]`)

// runnerCommands are privilege/environment runners whose real command is
// the following token. The gate looks through one level of them so that
// e.g. "sudo rm" is caught when "rm" is blocked.
var runnerCommands = map[string]struct{}{
	"sudo":  {},
	"doas":  {},
	"env":   {},
	"nohup": {},
	"nice":  {},
}

// Guard validates command lines against a blocklist.
type Guard struct {
	blocked map[string]struct{}
}

// New returns a Guard for the given blocked executable names.
// Matching is case-insensitive and ignores any directory prefix.
func New(blockedCommands []string) *Guard {
	g := &Guard{blocked: make(map[string]struct{}, len(blockedCommands))}
	for _, name := range blockedCommands {
		name = normalizeExecutable(name)
		if name != "" {
			g.blocked[name] = struct{}{}
		}
	}
	return g
}

// Validate returns nil if commandLine may be spawned, or an error
// wrapping ErrBlocked naming the offending executable. A single blocked
// executable anywhere in a chain rejects the whole command line.
func (g *Guard) Validate(commandLine string) error {
	if len(g.blocked) == 0 {
		return nil
	}
	for _, sub := range chainSplitter.Split(commandLine, -1) {
		sub = strings.TrimSpace(sub)
		if sub == "" {
			continue
		}
		for _, name := range leadingExecutables(sub) {
			if _, ok := g.blocked[name]; ok {
				return fmt.Errorf("executable %q: %w", name, ErrBlocked)
			}
		}
	}
	return nil
}

// leadingExecutables returns the executable names to match for one
// sub-command: the first token, plus the token after a privilege runner.
func leadingExecutables(sub string) []string {
	tokens, err := shellwords.Parse(sub)
	if err != nil {
		// Unbalanced quotes etc.; fall back to whitespace splitting
		// rather than letting the sub-command through unchecked.
		tokens = strings.Fields(sub)
	}
	var names []string
	runnerSeen := false
	for _, tok := range tokens {
		if tok == "" || strings.HasPrefix(tok, "-") {
			continue
		}
		// env-style VAR=value assignments prefix the real command.
		if strings.Contains(tok, "=") && !strings.ContainsAny(tok, "/\\") {
			continue
		}
		name := normalizeExecutable(tok)
		names = append(names, name)
		if _, ok := runnerCommands[name]; ok && !runnerSeen {
			runnerSeen = true
			continue
		}
		break
	}
	return names
}

// normalizeExecutable strips any path prefix and a Windows-style
// extension, and lowercases the result.
func normalizeExecutable(tok string) string {
	name := filepath.Base(strings.TrimSpace(tok))
	name = strings.ToLower(name)
	for _, ext := range []string{".exe", ".cmd", ".bat"} {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

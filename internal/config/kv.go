package config

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// ParseKV reads "key: value" lines. The line is split at the first colon
// and both halves are trimmed. Lines without a colon or with an empty key
// are skipped. Later keys override earlier ones.
func ParseKV(r io.Reader) map[string]string {
	kv := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		kv[key] = strings.TrimSpace(value)
	}
	return kv
}

// LoadKV parses the key/value file at path. If the file cannot be opened
// it returns an empty map and a *ConfigFileUnavailableError.
func LoadKV(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return map[string]string{}, &ConfigFileUnavailableError{Path: path, Err: err}
	}
	defer f.Close()
	return ParseKV(f), nil
}

// ParseSymbols reads one symbol per line. Lines are trimmed and blank lines
// skipped; lines starting with # are comments.
func ParseSymbols(r io.Reader) []string {
	var symbols []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		symbols = append(symbols, line)
	}
	return symbols
}

// LoadSymbols reads the symbol list at path.
func LoadSymbols(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigFileUnavailableError{Path: path, Err: err}
	}
	defer f.Close()
	return ParseSymbols(f), nil
}

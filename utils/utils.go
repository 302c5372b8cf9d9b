package utils

import (
	"bufio"
	"fmt"
	"github.com/twmb/murmur3"
	"os"
	"strings"
)

func HashString(s string) uint64 {
	hash := murmur3.New64()
	_, err := hash.Write([]byte(s))
	if err != nil {
		panic(err)
	}
	return hash.Sum64()
}

func HashBytes(bytes ...[]byte) uint64 {
	hash := murmur3.New64()
	for _, b := range bytes {
		_, err := hash.Write(b)
		if err != nil {
			panic(err)
		}
	}
	return hash.Sum64()
}

// HashKey renders a hash as a fixed-width hex string usable as a storage key.
func HashKey(prefix string, bytes ...[]byte) string {
	return fmt.Sprintf("%s:%016x", prefix, HashBytes(bytes...))
}

// ReadMap reads "key|value" lines. Blank lines and lines starting with "#"
// are skipped.
func ReadMap(filePath string) (map[string]string, error) {
	result := make(map[string]string)
	err := scanLines(filePath, func(line string) error {
		p := strings.SplitN(line, "|", 2)
		if len(p) != 2 {
			return fmt.Errorf("%s: expected 2 columns in %q", filePath, line)
		}
		result[p[0]] = p[1]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func ReadList(filePath string) ([]string, error) {
	var result []string
	err := scanLines(filePath, func(line string) error {
		result = append(result, line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func scanLines(filePath string, handle func(line string) error) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := handle(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

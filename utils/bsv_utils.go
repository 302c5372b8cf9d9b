package utils

import (
	"bufio"
	"text2phenotype.com/nlg/logger"
	"io"
	"os"
	"path"
	"strings"
)

type GetHashFunc func(columns []string) uint64

// NewBSVReader streams the columns of a "|"-separated file, dropping comment
// lines and rows whose hash was already seen. Case is preserved: lexicon
// files need proper nouns and acronyms intact.
func NewBSVReader(bsvPath string, getHash GetHashFunc) (<-chan []string, error) {
	_, fileName := path.Split(bsvPath)
	nlgLogger := logger.NewLogger("BSVReader (" + fileName + ")")

	f, err := os.Open(bsvPath)
	if err != nil {
		return nil, err
	}

	out := make(chan []string)

	go func() {
		defer f.Close()
		defer close(out)

		r := bufio.NewReader(f)

		// to remove duplicates
		var hashes = make(map[uint64]bool)

		for {
			line, err := r.ReadString('\n')
			if len(line) == 0 {
				if err == io.EOF {
					break
				} else if err != nil {
					nlgLogger.Error().Err(err).Msg("Failed to read line")
					return
				}
			}

			line = strings.TrimRight(line, "\r\n")
			if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
				continue
			}
			columns := strings.Split(line, "|")

			hash := getHash(columns)

			if !hashes[hash] {
				hashes[hash] = true

				out <- columns
			}
		}
	}()

	return out, nil
}

// HashColumns hashes all columns of a row.
func HashColumns(columns []string) uint64 {
	return HashString(strings.Join(columns, "|"))
}

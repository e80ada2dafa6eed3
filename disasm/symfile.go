package disasm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LoadSymbolFile reads a plain-text symbol map: each non-blank line starts
// with a hex address followed by a name. Extra fields are ignored.
func LoadSymbolFile(r io.Reader) (map[uint32]string, error) {
	symbols := make(map[uint32]string)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		addr, err := strconv.ParseUint(strings.TrimPrefix(fields[0], "0x"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("symbol file line %d: bad address %q", lineNo, fields[0])
		}
		symbols[uint32(addr)] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return symbols, nil
}

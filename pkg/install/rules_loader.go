// SPDX-License-Identifier: MPL-2.0

package install

import (
	_ "embed"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/mkoncek/xmvn/pkg/cueutil"
	"github.com/mkoncek/xmvn/pkg/types"
)

//go:embed rules_schema.cue
var rulesSchema []byte

type ruleFile struct {
	Rules []PackagingRule `json:"rules"`
}

// LoadRules reads and compiles a packaging-rule file. A missing file yields
// an empty rule set.
func LoadRules(fs afero.Fs, path types.FilesystemPath) (*RuleSet, error) {
	data, err := afero.ReadFile(fs, string(path))
	if err != nil {
		exists, statErr := afero.Exists(fs, string(path))
		if statErr == nil && !exists {
			return &RuleSet{}, nil
		}
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return ParseRules(data, filepath.Base(string(path)))
}

// ParseRules validates data against the rule-file schema and compiles every
// rule's glob. Malformed globs are reported as *artifact.MalformedPatternError.
func ParseRules(data []byte, filename string) (*RuleSet, error) {
	file, err := cueutil.ParseAndDecode[ruleFile](rulesSchema, data, "#RuleFile",
		cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}

	rs, err := NewRuleSet(file.Rules...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return rs, nil
}

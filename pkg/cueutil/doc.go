// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes CUE documents against an embedded schema.
//
// Packaging-rule files and the configuration file are both unified with a
// schema definition, validated and decoded by ParseAndDecode.
//
// # Usage
//
//	//go:embed rules_schema.cue
//	var rulesSchema []byte
//
//	file, err := cueutil.ParseAndDecode[ruleFile](
//	    rulesSchema,
//	    data,
//	    "#RuleFile",
//	    cueutil.WithFilename("xmvn-rules.cue"),
//	)
//	if err != nil {
//	    return nil, err // error carries the CUE path of the bad field
//	}
//	return file.Rules, nil
package cueutil

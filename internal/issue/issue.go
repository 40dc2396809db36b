// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Id identifies an entry of the issue catalog.
type Id int

const (
	FileNotFoundId Id = iota + 1
	ConfigLoadFailedId
	PlanCorruptId
	RulesParseErrorId
	ArtifactNotFoundId
	RepositoryNotFoundId
	RepositoryCycleId
	DuplicateArtifactId
	PermissionDeniedId
)

// MarkdownMsg is catalog text in markdown, rendered with glamour.
type MarkdownMsg string

// Issue is the guidance printed below a failed command.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the message with the named glamour style ("dark",
// "light", "notty", ...). An empty style lets glamour pick one.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found!

A file xmvn needed does not exist.

## Things you can try:
- Check the path you passed on the command line
- Run the command from the project root, where the reactor plan lives`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your xmvn configuration file could not be loaded.

## Configuration locations (in order of precedence):
1. The file given with --config
2. ~/.config/xmvn/config.cue
3. xmvn.cue in the current directory

## Things you can try:
- Print the effective file and its contents:
~~~
$ xmvn config path
$ xmvn config show
~~~

- Write a complete configuration to start from:
~~~
$ xmvn config dump > xmvn.cue
~~~`,
	}

	planCorruptIssue = &Issue{
		id: PlanCorruptId,
		mdMsg: `
# The reactor installation plan is corrupt!

The plan file exists but is not a valid reactorInstallationPlan document.
xmvn never overwrites a plan it cannot read, so the file is left as is.

## Things you can try:
- Inspect the file:
~~~
$ cat .xmvn-reactor
~~~

- Start over with an empty plan and re-run the build:
~~~
$ xmvn plan reset
~~~`,
	}

	rulesParseErrorIssue = &Issue{
		id: RulesParseErrorId,
		mdMsg: `
# Failed to parse packaging rules!

The packaging rule file has a syntax error or does not match the rule schema.

## Example rule file:
~~~cue
rules: [
  {artifact: "org.example:*-tests", optional: true},
  {
    artifact:      "org.example:core"
    targetPackage: "example-core"
    versions:      ["1"]
    files:         ["example"]
  },
]
~~~`,
	}

	artifactNotFoundIssue = &Issue{
		id: ArtifactNotFoundId,
		mdMsg: `
# Artifact not found!

None of the configured repositories contains the requested artifact.

## Things you can try:
- Check the artifact coordinates (groupId:artifactId[:extension[:classifier]]:version)
- Check the resolver directories:
~~~
$ xmvn config show
~~~`,
	}

	repositoryNotFoundIssue = &Issue{
		id: RepositoryNotFoundId,
		mdMsg: `
# Repository not found!

A packaging rule or compound repository refers to a repository id that is not defined.

## Things you can try:
- List the defined repositories with ` + "`xmvn config show`" + `
- Fix the targetRepository field of the rule`,
	}

	repositoryCycleIssue = &Issue{
		id: RepositoryCycleId,
		mdMsg: `
# Repository cycle detected!

A compound repository contains itself, directly or through other compound repositories.

## Things you can try:
- Follow the chain printed in the error and remove one of the references`,
	}

	duplicateArtifactIssue = &Issue{
		id: DuplicateArtifactId,
		mdMsg: `
# Duplicate artifact!

The same artifact was installed twice into one package.

## Things you can try:
- Check the reactor plan for duplicate entries:
~~~
$ xmvn plan show
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

xmvn could not read or write a file.

## Things you can try:
- Install into a build root you own with --build-root
- Check the permissions of the plan file`,
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():       fileNotFoundIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		planCorruptIssue.Id():        planCorruptIssue,
		rulesParseErrorIssue.Id():    rulesParseErrorIssue,
		artifactNotFoundIssue.Id():   artifactNotFoundIssue,
		repositoryNotFoundIssue.Id(): repositoryNotFoundIssue,
		repositoryCycleIssue.Id():    repositoryCycleIssue,
		duplicateArtifactIssue.Id():  duplicateArtifactIssue,
		permissionDeniedIssue.Id():   permissionDeniedIssue,
	}
)

// Values returns the catalog ordered by Id.
func Values() []*Issue {
	all := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		all = append(all, i)
	}
	slices.SortFunc(all, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return all
}

func Get(id Id) *Issue {
	return issues[id]
}

package policyrepo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// GitCloner implements domain.RepoCloner using go-git. Clones are shallow;
// the resolver only ever reads files from the work tree.
type GitCloner struct{}

func NewGitCloner() *GitCloner {
	return &GitCloner{}
}

func (g *GitCloner) Clone(url, dir string) error {
	_, err := git.PlainClone(dir, false, &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
	})
	if err != nil {
		return fmt.Errorf("cloning %s: %w", url, err)
	}
	return nil
}

// IsRepo reports whether dir already holds a git checkout.
func (g *GitCloner) IsRepo(dir string) bool {
	_, err := git.PlainOpen(dir)
	return err == nil
}

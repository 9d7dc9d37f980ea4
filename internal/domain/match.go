package domain

import "strings"

// MatchComponent finds the component a violation's image reference belongs
// to. Matching is tried strictest-first: exact reference match, then digest
// match, then repository-name match with the digest appearing anywhere in
// the component image.
func MatchComponent(imageRef string, components []Component) (Component, bool) {
	if imageRef == "" || len(components) == 0 {
		return Component{}, false
	}

	digest := imageDigest(imageRef)
	name := imageName(imageRef)

	for _, c := range components {
		if c.ContainerImage != "" && c.ContainerImage == imageRef {
			return c, true
		}
	}
	if digest != "" {
		for _, c := range components {
			if d := imageDigest(c.ContainerImage); d != "" && d == digest {
				return c, true
			}
		}
		for _, c := range components {
			if c.ContainerImage == "" {
				continue
			}
			if imageName(c.ContainerImage) == name && strings.Contains(c.ContainerImage, digest) {
				return c, true
			}
		}
	}

	return Component{}, false
}

func imageDigest(ref string) string {
	_, digest, found := strings.Cut(ref, "@sha256:")
	if !found {
		return ""
	}
	return digest
}

func imageName(ref string) string {
	name, _, _ := strings.Cut(ref, "@")
	return name
}

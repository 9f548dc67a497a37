package classify

import "strings"

// MediaKind is the coarse type of an attachment
type MediaKind string

// Media kinds. MediaLoading marks a probe that has not finished
const (
	MediaImage   MediaKind = "image"
	MediaVideo   MediaKind = "video"
	MediaUnknown MediaKind = "unknown"
	MediaLoading MediaKind = "loading"
)

const (
	ipfsScheme  = "ipfs://"
	ipfsGateway = "https://ipfs.io/ipfs/"
)

// IPFSGateway rewrites ipfs://X to the public HTTPS gateway, other URLs pass through
func IPFSGateway(u string) string {
	if !strings.HasPrefix(u, ipfsScheme) {
		return u
	}
	// the segment after the first "//" only, like the widget did
	rest := strings.SplitN(u, "//", 3)[1]
	return ipfsGateway + rest
}

// KindFromContentType classifies by the leading segment of a content type or mime type
func KindFromContentType(ct string) MediaKind {
	major, _, _ := strings.Cut(strings.TrimSpace(ct), "/")
	switch strings.ToLower(major) {
	case "image":
		return MediaImage
	case "video":
		return MediaVideo
	default:
		return MediaUnknown
	}
}

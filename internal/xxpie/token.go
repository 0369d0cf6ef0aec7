package xxpie

import "regexp"

// tokenPatterns match the places the album page embeds its API access
// token. JWT tokens are long, so short matches are rejected below.
var tokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"x-access-token":\s*"([^"]+)"`),
	regexp.MustCompile(`(?i)x-access-token["']?\s*[:=]\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?i)accessToken["']?\s*[:=]\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?i)token["']?\s*[:=]\s*["']([^"']+)["']`),
}

// minTokenLength filters out matches that are too short to be a JWT.
const minTokenLength = 50

// ExtractAccessToken scrapes the API access token from album page HTML.
//
// Returns the empty string when no token can be found; the album API
// can then be called unauthenticated, which works for public albums.
func ExtractAccessToken(html string) string {
	for _, pattern := range tokenPatterns {
		match := pattern.FindStringSubmatch(html)
		if len(match) > 1 && len(match[1]) > minTokenLength {
			return match[1]
		}
	}
	return ""
}

package util

import "fmt"

// FallbackAvatarURL is used when a user row has no picture from the
// identity provider.
func FallbackAvatarURL(name string) string {
	return fmt.Sprintf("https://api.dicebear.com/9.x/thumbs/svg?seed=%s", name)
}

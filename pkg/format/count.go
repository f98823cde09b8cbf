package format

import "strconv"

const likeCountCap = 50

// LikeCount renders a like counter for display, capping at "50+".
func LikeCount(count int64) string {
	if count > likeCountCap {
		return "50+"
	}
	return strconv.FormatInt(count, 10)
}

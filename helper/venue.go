package helper

import "time"

// VenueLocation là múi giờ của rạp – mọi kiểm tra hiệu lực khuyến mãi và
// lịch chạy job đều theo giờ rạp, không theo giờ của client
var VenueLocation = time.FixedZone("ICT", 7*3600)

func VenueNow() time.Time {
	return time.Now().In(VenueLocation)
}

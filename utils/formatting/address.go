// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package formatting

// ShortenAddress turns a 42 character hex address into 0x1234...abcd. Any
// other input is returned unchanged.
func ShortenAddress(address string) string {
	if len(address) != 42 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

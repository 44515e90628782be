package otquery

func i16(b []byte) int16 {
	return int16(b[0])<<8 | int16(b[1])<<0
}

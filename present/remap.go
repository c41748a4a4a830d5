package present

import "framefit/geom"

// Remap converts a device-space point on a surfaceW x surfaceH display into
// the content space of a contentW x contentH buffer shown letterboxed with
// mode. Points on the bars map outside [0,contentW) x [0,contentH).
func Remap(deviceX, deviceY, contentW, contentH, surfaceW, surfaceH float64, mode geom.Mode) (x, y float64) {
	fit := geom.Fit(contentW, contentH, surfaceW, surfaceH, 0, 0, mode)
	x = (deviceX - fit.ScaledX()) * contentW / fit.ScaledW()
	y = (deviceY - fit.ScaledY()) * contentH / fit.ScaledH()
	return x, y
}

// Unmap is the forward mapping: content space to device space.
func Unmap(contentX, contentY, contentW, contentH, surfaceW, surfaceH float64, mode geom.Mode) (x, y float64) {
	fit := geom.Fit(contentW, contentH, surfaceW, surfaceH, 0, 0, mode)
	x = fit.ScaledX() + contentX*fit.ScaledW()/contentW
	y = fit.ScaledY() + contentY*fit.ScaledH()/contentH
	return x, y
}

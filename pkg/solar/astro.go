package solar

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// astroProvider computes anchor times from the NOAA solar-position formulas:
// solar declination from day-of-year, the hour angle at a 90 degree zenith,
// and the equation of time evaluated at solar noon.
type astroProvider struct {
	latitude  float64
	longitude float64
	loc       *time.Location
}

func (p *astroProvider) SolarTimes(date time.Time) (time.Time, time.Time, error) {
	d := date.UTC()
	doy := float64(d.YearDay())

	// Solar declination: angle between the Sun and the celestial equator.
	innerAngle := (356.6 + 0.9856*doy) * (math.Pi / 180.0)
	outerAngle := (278.97 + 0.9856*doy + 1.9165*math.Sin(innerAngle)) * (math.Pi / 180.0)
	declinationRad := math.Asin(0.39785 * math.Sin(outerAngle))

	// Hour angle at the horizon: cos(H) = -tan(lat) * tan(declination).
	latRad := p.latitude * (math.Pi / 180.0)
	cosH := -math.Tan(latRad) * math.Tan(declinationRad)
	if cosH < -1.0 || cosH > 1.0 {
		// Polar day (sun never sets) or polar night (sun never rises).
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s at lat %.4f",
			ErrNoSunriseSunset, d.Format("2006-01-02"), p.latitude)
	}
	hourAngleMinutes := math.Acos(cosH) * (180.0 / math.Pi) / 15.0 * 60.0

	// Solar noon in UTC minutes from midnight, shifted by longitude
	// (4 minutes per degree) and the equation of time.
	noonUTC := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
	solarNoonUTC := 720.0 - p.longitude*4.0 - equationOfTimeMinutes(noonUTC)

	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	rise := midnight.Add(minutesDuration(solarNoonUTC - hourAngleMinutes))
	set := midnight.Add(minutesDuration(solarNoonUTC + hourAngleMinutes))
	return rise.In(p.loc), set.In(p.loc), nil
}

// equationOfTimeMinutes returns the difference between apparent and mean
// solar time in minutes, from the Meeus low-accuracy solar series evaluated
// at Julian centuries since J2000.0.
func equationOfTimeMinutes(t time.Time) float64 {
	jd := julian.TimeToJD(t)
	T := (jd - 2451545.0) / 36525.0

	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60

	y := math.Tan(degToRad(eps0)/2) * math.Tan(degToRad(eps0)/2)
	return radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
func fixAngle(a float64) float64   { return a - 360.0*math.Floor(a/360.0) }

func minutesDuration(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

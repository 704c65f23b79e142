package catalog

import "strings"

// imageBodies is checked in order; the first substring found in the image
// path names the awarding body.
var imageBodies = []struct {
	marker string
	body   string
}{
	{"icq", BodyICQ},
	{"seg", BodySEG},
	{"persons", BodyPearson},
	{"proqual", BodyProQual},
	{"vtct", BodyVTCT},
	{"sqa", BodySQA},
}

var imageAreas = []struct {
	marker string
	area   string
}{
	{"icq", "Education & Training"},
	{"seg", "Automotive & MOT"},
	{"persons", "English & Maths"},
	{"proqual", "Construction"},
	{"vtct", "ESOL Certificates"},
	{"sqa", "Taxi & Private Hire"},
}

// vtctFunctionalSkillsImages are the VTCT images of functional skills courses.
var vtctFunctionalSkillsImages = []string{"vtct14", "vtct15", "vtct16", "vtct17"}

// AreaGeneral is the subject area of a course whose image carries no marker.
const AreaGeneral = "General"

// AwardingBodyFromImage reads the awarding body encoded in an image path.
func AwardingBodyFromImage(path string) (string, bool) {
	p := strings.ToLower(path)
	for _, ib := range imageBodies {
		if strings.Contains(p, ib.marker) {
			return ib.body, true
		}
	}
	return "", false
}

// AreaFromImage reads the subject area encoded in an image path.
func AreaFromImage(path string) string {
	p := strings.ToLower(path)
	if strings.Contains(p, "vtct") && containsAny(p, vtctFunctionalSkillsImages) {
		return BodyVTCT
	}
	for _, ia := range imageAreas {
		if strings.Contains(p, ia.marker) {
			return ia.area
		}
	}
	return AreaGeneral
}

package catalog

import (
	"fmt"

	"github.com/okian/coursebook/internal/domain/model"
)

// fakeSource is a minimal Source over a literal payload.
type fakeSource struct {
	data map[model.Category][]model.Course
}

func (f *fakeSource) Category(c model.Category) ([]model.Course, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownCategory, string(c))
	}
	return f.data[c], nil
}

func (f *fakeSource) All() []model.Course {
	seen := map[int]bool{}
	var out []model.Course
	for _, k := range model.StoredCategories() {
		for _, c := range f.data[k] {
			if !seen[c.ID] {
				seen[c.ID] = true
				out = append(out, c)
			}
		}
	}
	return out
}

func (f *fakeSource) SourceOf(id int) (model.Category, bool) {
	for _, k := range model.StoredCategories() {
		for _, c := range f.data[k] {
			if c.ID == id {
				return k, true
			}
		}
	}
	return "", false
}

func course(id int, title, image string) model.Course {
	return model.Course{ID: id, Title: title, Description: title + " description", ImagePath: image}
}

func fixture() *fakeSource {
	return &fakeSource{data: map[model.Category][]model.Course{
		model.CategorySEG: {
			course(1, "MOT Technician Level 2", "seg1.png"),
			course(70, "Level 4 Diploma", "icq3.png"),
			course(20, "Level 4 Certificate in MOT Management", "seg4.png"),
			course(21, "Automotive Level 3 Diploma", "seg2.png"),
		},
		model.CategoryVTCT: {
			course(30, "ESOL Skills for Life Entry 1", "vtct1.png"),
			course(31, "Beauty Therapy Level 2", "vtct3.png"),
			course(71, "Level 3 Award in Assessing Competence", "vtct9.png"),
		},
		model.CategoryPersons: {
			course(40, "GCSE Maths Refresher", "persons9.png"),
			course(8, "Functional Skills Level 2 Maths", "persons8.png"),
			course(5, "Entry Level 1 English", "persons5.png"),
			course(77, "VTCT FUNCTIONAL SKILLS Level 1 English", "vtct15.png"),
			course(41, "Study Skills", "persons10.png"),
			course(75, "Functional Skills Entry Level 3 Maths", "persons75.png"),
		},
		model.CategoryProQual: {
			course(16, "Level 4 NVQ Diploma in Construction Site Supervision", "proqual16.png"),
			course(60, "Level 2 NVQ Certificate in Construction", "proqual2.png"),
		},
		model.CategoryTaxi: {
			course(2, "Taxi Driver Knowledge Test", "sqa2.png"),
			course(46, "Introduction to the Role of the Professional Taxi and Private Hire Driver", "icq46.png"),
			course(47, "BTEC Level 2 Certificate in Taxi Services", "sqa47.png"),
			course(48, "SQA Passenger Transport Award", "sqa48.png"),
			course(49, "Private Hire Route Planning", "sqa49.png"),
		},
		model.CategorySQA: {
			course(48, "SQA Passenger Transport Award", "sqa48.png"),
		},
		model.CategoryICQ: {
			course(15, "Level 3 Award in Health and Safety", "proqual15.png"),
			course(56, "Level 3 Certificate in Assessing Vocational Achievement", "icq5.png"),
			course(10, "Level 5 Diploma in Education and Training", "icq2.png"),
			course(99, "Unlisted ICQ Native", "icq9.png"),
			course(3, "Level 4 Certificate in Education and Training", "icq3.png"),
			course(9, "Level 3 Award in Education and Training", "icq1.png"),
		},
	}}
}

func ids(courses []model.AnnotatedCourse) []int {
	out := make([]int, len(courses))
	for i, c := range courses {
		out[i] = c.ID
	}
	return out
}

func byID(courses []model.AnnotatedCourse, id int) model.AnnotatedCourse {
	for _, c := range courses {
		if c.ID == id {
			return c
		}
	}
	return model.AnnotatedCourse{}
}

package classifier

import (
	"github.com/rohmanhakim/justext/internal/paragraph"
)

/*
Responsibilities
- Finalize ClassType from CFClass and the classes of neighbouring paragraphs

Revision runs four passes in order. Each pass reads the classes left by the
previous one and produces a fresh class slice, so no pass observes its own
partial results.
*/

// Revise sets ClassType on every paragraph. CFClass is left untouched.
func Revise(paragraphs []*paragraph.Paragraph, maxHeadingDistance int) {
	lengths := make([]int, len(paragraphs))
	classes := make([]paragraph.Class, len(paragraphs))
	for i, p := range paragraphs {
		lengths[i] = p.Len()
		classes[i] = p.CFClass
	}

	classes = reviseGoodHeadings(paragraphs, classes, lengths, maxHeadingDistance)
	classes = reviseShort(classes)
	classes = reviseNearGood(classes)
	classes = reviseDemotedHeadings(paragraphs, classes, lengths, maxHeadingDistance)

	for i, p := range paragraphs {
		p.ClassType = classes[i]
	}
}

// reviseGoodHeadings promotes short headings followed closely by good text.
func reviseGoodHeadings(
	paragraphs []*paragraph.Paragraph,
	classes []paragraph.Class,
	lengths []int,
	maxDistance int,
) []paragraph.Class {
	next := append([]paragraph.Class(nil), classes...)
	for i, p := range paragraphs {
		if !p.Heading || classes[i] != paragraph.ClassShort {
			continue
		}
		if goodWithinDistance(classes, lengths, i, maxDistance) {
			next[i] = paragraph.ClassNearGood
		}
	}
	return next
}

func reviseShort(classes []paragraph.Class) []paragraph.Class {
	next := append([]paragraph.Class(nil), classes...)
	for i, c := range classes {
		if c != paragraph.ClassShort {
			continue
		}

		prev := prevNeighbour(classes, i, true)
		following := nextNeighbour(classes, i, true)

		switch {
		case prev == paragraph.ClassGood && following == paragraph.ClassGood:
			next[i] = paragraph.ClassGood
		case prev == paragraph.ClassBad && following == paragraph.ClassBad:
			next[i] = paragraph.ClassBad
		case prev == paragraph.ClassBad && prevNeighbour(classes, i, false) == paragraph.ClassNearGood:
			next[i] = paragraph.ClassGood
		case following == paragraph.ClassBad && nextNeighbour(classes, i, false) == paragraph.ClassNearGood:
			next[i] = paragraph.ClassGood
		default:
			next[i] = paragraph.ClassBad
		}
	}
	return next
}

func reviseNearGood(classes []paragraph.Class) []paragraph.Class {
	next := append([]paragraph.Class(nil), classes...)
	for i, c := range classes {
		if c != paragraph.ClassNearGood {
			continue
		}
		prev := prevNeighbour(classes, i, true)
		following := nextNeighbour(classes, i, true)
		if prev == paragraph.ClassBad && following == paragraph.ClassBad {
			next[i] = paragraph.ClassBad
		} else {
			next[i] = paragraph.ClassGood
		}
	}
	return next
}

// reviseDemotedHeadings restores headings that lost their class during
// revision but precede good text.
func reviseDemotedHeadings(
	paragraphs []*paragraph.Paragraph,
	classes []paragraph.Class,
	lengths []int,
	maxDistance int,
) []paragraph.Class {
	next := append([]paragraph.Class(nil), classes...)
	for i, p := range paragraphs {
		if !p.Heading || classes[i] != paragraph.ClassBad || p.CFClass == paragraph.ClassBad {
			continue
		}
		if goodWithinDistance(classes, lengths, i, maxDistance) {
			next[i] = paragraph.ClassGood
		}
	}
	return next
}

// goodWithinDistance scans forward from i. The distance is the total length
// of the paragraphs passed over before reaching a good one.
func goodWithinDistance(classes []paragraph.Class, lengths []int, i int, maxDistance int) bool {
	distance := 0
	for j := i + 1; j < len(classes) && distance <= maxDistance; j++ {
		if classes[j] == paragraph.ClassGood {
			return true
		}
		distance += lengths[j]
	}
	return false
}

func prevNeighbour(classes []paragraph.Class, i int, ignoreNearGood bool) paragraph.Class {
	return neighbour(classes, i, ignoreNearGood, -1)
}

func nextNeighbour(classes []paragraph.Class, i int, ignoreNearGood bool) paragraph.Class {
	return neighbour(classes, i, ignoreNearGood, 1)
}

// neighbour walks in direction step to the nearest good or bad paragraph.
// Unless ignoreNearGood is set, a neargood paragraph also stops the walk.
// Running off either end counts as bad.
func neighbour(classes []paragraph.Class, i int, ignoreNearGood bool, step int) paragraph.Class {
	for j := i + step; j >= 0 && j < len(classes); j += step {
		switch classes[j] {
		case paragraph.ClassGood, paragraph.ClassBad:
			return classes[j]
		case paragraph.ClassNearGood:
			if !ignoreNearGood {
				return classes[j]
			}
		}
	}
	return paragraph.ClassBad
}

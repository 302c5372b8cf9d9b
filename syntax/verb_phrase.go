package syntax

import (
	"text2phenotype.com/nlg/types"
	"strings"
)

type verbSlot int

const (
	slotModal verbSlot = iota
	slotDo
	slotPerfect
	slotProgressive
	slotPassive
	slotMain
)

// formAfter is the form a verb takes when it follows an auxiliary.
var formAfter = map[verbSlot]types.Form{
	slotModal:       types.FormBareInfinitive,
	slotDo:          types.FormBareInfinitive,
	slotPerfect:     types.FormPastParticiple,
	slotProgressive: types.FormPresentParticiple,
	slotPassive:     types.FormPastParticiple,
}

var auxiliaries = map[verbSlot]string{
	slotDo:          "do",
	slotPerfect:     "have",
	slotProgressive: "be",
	slotPassive:     "be",
}

// verbGroup builds the verb group of a clause: modal, perfect "have",
// progressive "be", passive "be" and the main verb, in that order. Only the
// first verb of a finite group carries tense and agreement. When invert is
// set the first element returned is the auxiliary that moves in front of the
// subject.
func (p *processor) verbGroup(vp *types.PhraseElement, settings types.FeatureSet, agr agreement, invert bool,
	premods []types.Element) []types.Element {
	if vp.Head == nil {
		return nil
	}
	form := settings.Form()
	finite := form.Finite()
	tense := settings.Tense()
	negated := settings.Bool(types.FeatureNegated)

	var main *types.InflectedWordElement
	if w, ok := vp.Head.(*types.WordElement); ok {
		main = p.word(w)
	}
	isBe := main != nil && strings.EqualFold(main.BaseForm, "be")

	var modal string
	if finite {
		modal = settings.Text(types.FeatureModal)
		if modal == "" && tense == types.TenseFuture {
			modal = "will"
		}
	}

	var slots []verbSlot
	if modal != "" {
		slots = append(slots, slotModal)
	}
	if settings.Bool(types.FeaturePerfect) || (tense == types.TensePast && modal != "") {
		slots = append(slots, slotPerfect)
	}
	if settings.Bool(types.FeatureProgressive) {
		slots = append(slots, slotProgressive)
	}
	if settings.Bool(types.FeaturePassive) {
		slots = append(slots, slotPassive)
	}
	if len(slots) == 0 && ((finite && (negated || invert) && !isBe) || (form == types.FormImperative && negated)) {
		slots = append(slots, slotDo)
	}
	slots = append(slots, slotMain)

	items := make([]types.Element, len(slots))
	for i, slot := range slots {
		fs := types.FeatureSet{}
		switch {
		case i > 0:
			fs[types.FeatureForm] = formAfter[slots[i-1]]
		case finite:
			fs[types.FeatureTense] = tense
			fs[types.FeaturePerson] = agr.person
			fs[types.FeatureNumber] = agr.number
			fs[types.FeatureFinite] = types.Bool(true)
		case form == types.FormInfinitive:
			fs[types.FeatureForm] = types.FormBareInfinitive
		default:
			fs[types.FeatureForm] = form
		}

		if slot == slotMain {
			items[i] = p.mainVerb(vp.Head, main, fs)
			continue
		}
		var word *types.InflectedWordElement
		if slot == slotModal {
			word = p.newWord(modal, types.CategoryModal)
		} else {
			word = p.newWord(auxiliaries[slot], types.CategoryVerb)
		}
		fs[types.FeatureDiscourseFunction] = types.FunctionAuxiliary
		for name, value := range fs {
			word.SetFeature(name, value)
		}
		items[i] = word
	}

	var not types.Element
	if negated {
		not = p.newWord("not", types.CategoryAdverb)
	}

	var out []types.Element
	switch {
	case form == types.FormInfinitive:
		out = appendNonNil(out, not, p.newWord("to", types.CategoryPreposition))
		out = append(out, premods...)
		out = append(out, items...)
	case !finite && form != types.FormImperative:
		out = appendNonNil(out, not)
		out = append(out, premods...)
		out = append(out, items...)
	case len(items) > 1 || invert || not != nil:
		out = appendNonNil(out, items[0], not)
		out = append(out, premods...)
		out = append(out, items[1:]...)
	default:
		out = append(out, premods...)
		out = append(out, items...)
	}

	if particle := settings.Text(types.FeatureParticle); particle != "" {
		out = append(out, types.NewStringElement(particle))
	}
	return out
}

// mainVerb realises the head of the verb phrase with the features its
// position in the verb group calls for. A head that is not a single word,
// such as a coordination of verb phrases, receives the features instead.
func (p *processor) mainVerb(head types.Element, word *types.InflectedWordElement,
	fs types.FeatureSet) types.Element {
	if word == nil {
		fs[types.FeatureDiscourseFunction] = types.FunctionVerbPhrase
		return p.realise(types.WithFeatures(head, fs))
	}
	fs[types.FeatureDiscourseFunction] = types.FunctionHead
	for name, value := range fs {
		word.SetFeature(name, value)
	}
	return word
}

func appendNonNil(list []types.Element, els ...types.Element) []types.Element {
	for _, el := range els {
		if el != nil {
			list = append(list, el)
		}
	}
	return list
}

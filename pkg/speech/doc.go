// Package speech turns clock times into spoken phrases.
//
// [Phrase] produces the German or English wording, [ResolveLanguage] picks
// the language for a user setting, and [Speaker] hands utterances to a
// [Synthesizer] with at most one in flight.
//
//	synth, err := speech.DetectSynthesizer("")
//	if err != nil {
//	    // no engine installed; speaking is a no-op
//	}
//	sp := speech.NewSpeaker(synth)
//	sp.Speak(ctx, 6, 30, speech.SettingAuto) // "Es ist halb 7" on German systems
package speech

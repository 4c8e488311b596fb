// Package corpus holds a fixed demonstration text used as default
// payload for the CLI's --transmit mode and for spec.md §8's end-to-end
// scenario 2.
package corpus

// Ozymandias is the fixed demo text (Percy Bysshe Shelley).
const Ozymandias = `
I met a traveller from an antique land,
Who said-"Two vast and trunkless legs of stone
Stand in the desert. . . . Near them, on the sand,
Half sunk a shattered visage lies, whose frown,
And wrinkled lip, and sneer of cold command,
Tell that its sculptor well those passions read
Which yet survive, stamped on these lifeless things,
The hand that mocked them, and the heart that fed;
And on the pedestal, these words appear:
My name is Ozymandias, King of Kings;
Look on my Works, ye Mighty, and despair!
Nothing beside remains. Round the decay
Of that colossal Wreck, boundless and bare
The lone and level sands stretch far away.
`

// Fill returns n bytes of Ozymandias, cycling the text if n exceeds its
// length.
func Fill(n int) []byte {
	src := []byte(Ozymandias)
	out := make([]byte, n)
	for i := range out {
		out[i] = src[i%len(src)]
	}
	return out
}

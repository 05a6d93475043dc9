// Copyright (C) 2025 Opsmate, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a
// copy of this software and associated documentation files (the "Software"),
// to deal in the Software without restriction, including without limitation
// the rights to use, copy, modify, merge, publish, distribute, sublicense,
// and/or sell copies of the Software, and to permit persons to whom the
// Software is furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included
// in all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL
// THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// Except as contained in this notice, the name(s) of the above copyright
// holders shall not be used in advertising or otherwise to promote the
// sale, use or other dealings in this Software without prior written
// authorization.

package atom

import (
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

var latin1Entities = strings.Fields(`
	nbsp iexcl cent pound curren yen brvbar sect uml copy ordf laquo not shy reg macr
	deg plusmn sup2 sup3 acute micro para middot cedil sup1 ordm raquo frac14 frac12 frac34 iquest
	Agrave Aacute Acirc Atilde Auml Aring AElig Ccedil Egrave Eacute Ecirc Euml Igrave Iacute Icirc Iuml
	ETH Ntilde Ograve Oacute Ocirc Otilde Ouml times Oslash Ugrave Uacute Ucirc Uuml Yacute THORN szlig
	agrave aacute acirc atilde auml aring aelig ccedil egrave eacute ecirc euml igrave iacute icirc iuml
	eth ntilde ograve oacute ocirc otilde ouml divide oslash ugrave uacute ucirc uuml yacute thorn yuml`)

var greekEntities = strings.Fields(`
	Alpha Beta Gamma Delta Epsilon Zeta Eta Theta Iota Kappa Lambda Mu Nu Xi Omicron Pi Rho
	- Sigma Tau Upsilon Phi Chi Psi Omega`)

var otherEntities = map[rune]string{
	338: "OElig", 339: "oelig", 352: "Scaron", 353: "scaron", 376: "Yuml", 402: "fnof",
	710: "circ", 732: "tilde", 977: "thetasym", 978: "upsih", 982: "piv",
	8194: "ensp", 8195: "emsp", 8201: "thinsp", 8204: "zwnj", 8205: "zwj", 8206: "lrm", 8207: "rlm",
	8211: "ndash", 8212: "mdash", 8216: "lsquo", 8217: "rsquo", 8218: "sbquo",
	8220: "ldquo", 8221: "rdquo", 8222: "bdquo", 8224: "dagger", 8225: "Dagger", 8226: "bull",
	8230: "hellip", 8240: "permil", 8242: "prime", 8243: "Prime", 8249: "lsaquo", 8250: "rsaquo",
	8254: "oline", 8260: "frasl", 8364: "euro", 8465: "image", 8472: "weierp", 8476: "real",
	8482: "trade", 8501: "alefsym", 8592: "larr", 8593: "uarr", 8594: "rarr", 8595: "darr",
	8596: "harr", 8629: "crarr", 8656: "lArr", 8657: "uArr", 8658: "rArr", 8659: "dArr", 8660: "hArr",
	8704: "forall", 8706: "part", 8707: "exist", 8709: "empty", 8711: "nabla", 8712: "isin",
	8713: "notin", 8715: "ni", 8719: "prod", 8721: "sum", 8722: "minus", 8727: "lowast",
	8730: "radic", 8733: "prop", 8734: "infin", 8736: "ang", 8743: "and", 8744: "or", 8745: "cap",
	8746: "cup", 8747: "int", 8756: "there4", 8764: "sim", 8773: "cong", 8776: "asymp", 8800: "ne",
	8801: "equiv", 8804: "le", 8805: "ge", 8834: "sub", 8835: "sup", 8836: "nsub", 8838: "sube",
	8839: "supe", 8853: "oplus", 8855: "otimes", 8869: "perp", 8901: "sdot", 8968: "lceil",
	8969: "rceil", 8970: "lfloor", 8971: "rfloor", 9001: "lang", 9002: "rang", 9674: "loz",
	9824: "spades", 9827: "clubs", 9829: "hearts", 9830: "diams",
}

var namedEntities = buildEntityTable()

func buildEntityTable() map[rune]string {
	table := make(map[rune]string, len(latin1Entities)+2*len(greekEntities)+len(otherEntities)+3)
	table['&'] = "amp"
	table['<'] = "lt"
	table['>'] = "gt"
	for i, name := range latin1Entities {
		table[rune(0xA0+i)] = name
	}
	for i, name := range greekEntities {
		if name == "-" {
			// U+03A2 is unassigned; its lowercase position holds final sigma
			table[rune(0x3B1+i)] = "sigmaf"
			continue
		}
		table[rune(0x391+i)] = name
		table[rune(0x3B1+i)] = strings.ToLower(name)
	}
	for r, name := range otherEntities {
		table[r] = name
	}
	return table
}

// EscapeEntities replaces every character of s that has a named HTML 4
// entity with that entity. Quote characters are left alone. s is
// interpreted in the given charset; unknown charsets are treated as UTF-8.
func EscapeEntities(s string, charset string) string {
	s = decodeCharset(s, charset)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if name, ok := namedEntities[r]; ok {
			b.WriteByte('&')
			b.WriteString(name)
			b.WriteByte(';')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func decodeCharset(s string, charset string) string {
	if charset == "" || strings.EqualFold(charset, DefaultCharset) {
		return s
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return s
	}
	decoded, err := enc.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return decoded
}

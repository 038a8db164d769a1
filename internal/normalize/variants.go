package normalize

// DefaultVariantTable maps simplified characters that OCR substitutes
// into traditional-script papers back to their traditional forms. Only
// unambiguous one-to-one pairs; context-dependent mappings stay out.
func DefaultVariantTable() map[rune]rune {
	return map[rune]rune{
		'国': '國', '会': '會', '对': '對', '开': '開', '关': '關',
		'门': '門', '问': '問', '间': '間', '们': '們', '为': '為',
		'与': '與', '从': '從', '应': '應', '这': '這', '进': '進',
		'还': '還', '过': '過', '说': '說', '时': '時', '实': '實',
		'发': '發', '员': '員', '动': '動', '务': '務', '经': '經',
		'两': '兩', '条': '條', '当': '當', '体': '體', '机': '機',
		'后': '後', '个': '個', '书': '書', '处': '處', '选': '選',
		'权': '權', '义': '義', '护': '護', '证': '證', '规': '規',
		'级': '級', '监': '監', '检': '檢', '罚': '罰', '违': '違',
		'执': '執', '审': '審', '设': '設', '长': '長', '层': '層',
	}
}

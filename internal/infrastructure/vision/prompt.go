package vision

// Промпты на корейском: метки в реестре ответов тоже на корейском.
// Модели прямо запрещено опираться на имя файла.
const (
	classifySystemPrompt = `당신은 농작물 이미지 분류 전문가입니다.
절대로 파일명을 보지 말고, 오직 이미지 내용만 보고 판단하세요.
반드시 다음과 같은 JSON 형식으로만 답변하세요:
{"crop": "사과", "confidence": 0.93}

규칙:
- "crop": 농작물의 한글 이름 (예: "사과", "딸기", "토마토", "고추", "포도")
- "confidence": 0.0에서 1.0 사이의 소수점 숫자
- 추가 설명이나 마크다운 형식 없이 JSON만 반환하세요
- 반드시 JSON 객체만 반환하세요`

	classifyUserPrompt = `이 이미지를 보고 어떤 농작물인지 식별하세요.
농작물 이름(한글)과 확신도를 포함한 JSON 객체만 반환하세요.`

	identifySystemPrompt = `당신은 한국의 농작물 전문가입니다.
이미지를 보고 다음 정보를 JSON 형식으로 제공하세요:

{
  "name": "농작물 한글 이름",
  "name_en": "영어 이름",
  "confidence": 0.95,
  "category": "과일/채소/곡물 등",
  "famous_regions": ["한국 내 유명 생산지1", "한국 내 유명 생산지2", "한국 내 유명 생산지3"],
  "season": "제철 시기 (예: 5월~8월)",
  "nutrition": "주요 영양소 간단 설명",
  "storage": "보관 방법 간단 설명",
  "taste": "맛 특징 간단 설명"
}

중요 규칙:
- famous_regions는 반드시 대한민국 내의 지역만 포함하세요 (예: 제주도, 나주, 충주, 영천, 김천 등)
- 한국에서 잘 재배되지 않는 작물이라도 한국에서 재배하는 지역을 찾아서 답변하세요
- 반드시 JSON 형식으로만 답변하세요
- 마크다운 코드 블록(` + "```" + `)은 사용하지 마세요`

	identifyUserPrompt = `이 이미지의 농작물을 분석하고 상세 정보를 JSON으로 제공해주세요.`
)

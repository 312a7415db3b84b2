package analysis

const fullReport = `# 제목 분석
등급: B+
분석: 제목이 글의 중심 내용을 잘 드러냅니다.
제안: 1. 봄날의 소풍 2. 친구와 함께한 하루
3. 즐거운 소풍

# 글 분석
[논리성]
등급: B
평가: 주장과 근거가 잘 연결됩니다.
잘된 점: 예시가 구체적입니다.
개선점: 결론을 더 분명히 하세요.

[구조성]
등급: A
평가: 처음과 끝이 분명합니다.
잘된 점: 문단 나누기가 자연스럽습니다.
개선점: 가운데 문단을 늘려 보세요.

[표현성]
등급: C+
평가: 표현이 단순합니다.
잘된 점: 문장이 짧고 읽기 쉽습니다.
개선점: 흉내 내는 말을 써 보세요.

[완성도]
등급: A+
평가: 맞춤법이 거의 정확합니다.
잘된 점: 분량이 충분합니다.
개선점: 마지막 문장을 다듬어 보세요.

[2문단]
원문: 점심에는 김밥을 먹엇다.
분석: 시간 순서가 드러납니다.
잘된 점: 장면이 떠오릅니다.
개선점: 느낌을 더해 보세요.
표현 개선 제안:
- 김밥이 맛있었다고 느낌을 더해 보세요.
- 시간 순서를 나타내는 말을 써 보세요.
맞춤법 교정:
- 먹엇다 → 먹었다, 받침, 과거형
- 없음

[1문단]
원문: 오늘은 소풍을 갔다.
분석: 글의 시작을 알립니다.
잘된 점: 짧고 분명합니다.
개선점: 누구와 갔는지 써 보세요.
표현 개선 제안:
1. 날씨를 함께 써 보세요.
맞춤법 교정:
없음

# 문단 구성 제안
현재 문단 구조: 두 문단으로 되어 있습니다.
문단 구성 개선안: 처음, 가운데, 끝으로 나누어 보세요.
구체적 실행 방안: 마지막에 느낀 점 문단을 추가하세요.

총평: 즐거운 하루가 잘 드러난 글입니다.
`

// allBReport has every category graded B and no title section.
const allBReport = `[논리성]
등급: B
평가: 무난합니다.
[구조성]
등급: B
[표현성]
등급: B
[완성도]
등급: B

[1문단]
원문: 오늘은 소풍을 갔다.
분석: 시작 문단입니다.

총평: 잘 썼어요
`
